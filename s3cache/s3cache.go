/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3cache stores httpcache responses in Amazon S3 so that match
 * payloads fetched from the data service survive restarts and are shared
 * between dashboard replicas. Object keys name the data URL they cache:
 *
 *	<prefix>/<host>/<path>-<digest>[.gz]
 *
 * which keeps a bucket listing readable when several data services or
 * endpoints share one bucket.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultPrefix is the object key prefix used when none is configured.
const DefaultPrefix = "rugby-data"

const (
	digestLen   = 12
	maxSlugLen  = 64
	sourceURLMD = "source-url"
)

// ObjectAPI is the subset of the S3 client the cache depends on.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Cache is an httpcache.Cache whose entries live in one S3 bucket.
type Cache struct {
	// Config is the AWS configuration populated by Init().
	Config aws.Config

	// Client is set by Init(); tests substitute their own.
	Client ObjectAPI

	// Prefix is the first path segment of every object key.
	Prefix string

	bucket    string
	compress  bool
	logErrors bool
	ctx       context.Context
}

// New returns a Cache over bucket. Objects are gzipped when compress is set.
// Call Init() before use unless Client is supplied directly.
func New(ctx context.Context, bucket string, compress bool,
	logErrors bool) *Cache {

	return &Cache{
		Prefix:    DefaultPrefix,
		bucket:    bucket,
		compress:  compress,
		logErrors: logErrors,
		ctx:       ctx,
	}
}

// Init loads the default AWS configuration and checks that the bucket
// exists and can be listed.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(c.Config)

	_, err = client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3cache.init: bucket %v unavailable: %w", c.bucket, err)
	}
	_, err = client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("s3cache.init: cannot list bucket %v: %w", c.bucket, err)
	}

	c.Client = client
	return nil
}

// Get returns the cached response stored for key.
func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.ObjectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if !isNoSuchKey(err) {
			c.logf("s3cache.get: %v/%v: %v", c.bucket, objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	data, err := c.decode(resp.Body)
	if err != nil {
		c.logf("s3cache.get: %v/%v: %v", c.bucket, objKey, err)
		return nil, false
	}

	return data, true
}

// Set stores a response for key, replacing any earlier one.
func (c *Cache) Set(key string, data []byte) {
	objKey := c.ObjectKey(key)
	body, err := c.encode(data)
	if err != nil {
		c.logf("s3cache.set: %v/%v: %v", c.bucket, objKey, err)
		return
	}

	input := &s3.PutObjectInput{
		Bucket:   aws.String(c.bucket),
		Key:      aws.String(objKey),
		Body:     bytes.NewReader(body),
		Metadata: map[string]string{sourceURLMD: sourceURL(key)},
	}
	if c.compress {
		input.ContentEncoding = aws.String("gzip")
	}
	_, err = c.Client.PutObject(c.ctx, input)
	if err != nil {
		c.logf("s3cache.set: %v/%v: %v", c.bucket, objKey, err)
	}
}

// Delete removes the response stored for key.
func (c *Cache) Delete(key string) {
	objKey := c.ObjectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logf("s3cache.delete: %v/%v: %v", c.bucket, objKey, err)
	}
}

// ObjectKey maps an httpcache key (the request URL, preceded by the method
// for anything but GET) to the S3 object holding its response. The digest
// covers the whole key so distinct queries and methods never collide.
func (c *Cache) ObjectKey(key string) string {
	prefix := strings.Trim(c.Prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}

	host, path := "_", key
	if u, err := url.Parse(sourceURL(key)); err == nil && u.Host != "" {
		host, path = slug(u.Host), u.Path
	}
	path = slug(path)
	if path == "" {
		path = "root"
	}

	sum := md5.Sum([]byte(key))
	objKey := fmt.Sprintf("%v/%v/%v-%v", prefix, host, path,
		hex.EncodeToString(sum[:])[:digestLen])
	if c.compress {
		objKey += ".gz"
	}

	return objKey
}

// sourceURL strips the method httpcache puts in front of non-GET keys.
func sourceURL(key string) string {
	if i := strings.IndexByte(key, ' '); i >= 0 {
		return key[i+1:]
	}
	return key
}

// slug keeps letters, digits, '.' and '-' and folds every other run of
// characters into a single '_'.
func slug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		ok := r == '.' || r == '-' || (r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !ok {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
		if b.Len() >= maxSlugLen {
			break
		}
	}
	return b.String()
}

func (c *Cache) encode(data []byte) ([]byte, error) {
	if !c.compress {
		return data, nil
	}
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(data)
	if err == nil {
		err = gw.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Cache) decode(body io.Reader) ([]byte, error) {
	if c.compress {
		gr, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		body = gr
	}
	return io.ReadAll(body)
}

func (c *Cache) logf(format string, args ...any) {
	if c.logErrors {
		log.Printf(format, args...)
	}
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
