/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source is a backing table of matches. Load reads the whole table on
// every call; sources are never written through this interface.
type Source interface {
	Load(ctx context.Context) ([]Match, LoadStats, error)
	String() string
}

// OpenSource returns the Source described by uri:
//
//	results.csv, file:///data/results.csv    CSV file
//	s3://bucket/key.csv                      CSV object in S3
//	sqlite:///var/lib/rugby.db?table=t       sqlite table (default "matches")
//	postgres://user:pw@host/db?table=t       postgres table (default "matches")
func OpenSource(ctx context.Context, uri string) (Source, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, err := parseS3URI(uri)
		if err != nil {
			return nil, err
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("rugby.OpenSource: failed to load AWS config: %w", err)
		}
		return &S3Source{
			Client: s3.NewFromConfig(cfg),
			Bucket: bucket,
			Key:    key,
		}, nil
	case strings.HasPrefix(uri, "sqlite://"), strings.HasPrefix(uri, "postgres://"),
		strings.HasPrefix(uri, "postgresql://"):
		return OpenSQLSource(ctx, uri)
	case strings.HasPrefix(uri, "file://"):
		return &FileSource{Path: strings.TrimPrefix(uri, "file://")}, nil
	case strings.Contains(uri, "://"):
		return nil, fmt.Errorf("rugby.OpenSource: unsupported source %q", uri)
	}

	return &FileSource{Path: uri}, nil
}

// FileSource reads a CSV file from local disk.
type FileSource struct {
	Path string
}

func (fs *FileSource) Load(ctx context.Context) ([]Match, LoadStats, error) {
	f, err := os.Open(fs.Path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("rugby.FileSource: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

func (fs *FileSource) String() string {
	return fs.Path
}

// ObjectGetter is the subset of the S3 client S3Source depends on.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a CSV object from S3.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

func (ss *S3Source) Load(ctx context.Context) ([]Match, LoadStats, error) {
	resp, err := ss.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ss.Bucket),
		Key:    aws.String(ss.Key),
	})
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("rugby.S3Source: failed to get %v: %w",
			ss, err)
	}
	defer resp.Body.Close()

	return ReadCSV(io.Reader(resp.Body))
}

func (ss *S3Source) String() string {
	return fmt.Sprintf("s3://%v/%v", ss.Bucket, ss.Key)
}

func parseS3URI(uri string) (string, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("rugby.OpenSource: invalid s3 uri %q: %w", uri, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("rugby.OpenSource: s3 uri %q needs a bucket and key", uri)
	}
	return u.Host, key, nil
}
