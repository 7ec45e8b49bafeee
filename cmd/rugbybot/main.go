/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/internal"
	"github.com/mikeb26/rugbystats/rugby"
)

type TopLevelCommand string

const (
	RugbyCmd TopLevelCommand = "rugby"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	RugbyCmd: rugbyCmdHandler,
}

// FrameLoader returns the current analytics frame.
type FrameLoader func(ctx context.Context) (*analytics.Frame, error)

var loadFrame FrameLoader

// newFrameLoader fetches through httpClient on every call; the client's
// cache keeps that to one real fetch per cache window.
func newFrameLoader(httpClient *http.Client, url string,
	cls rugby.Classifier) FrameLoader {

	client := rugby.NewClient(httpClient, url)
	return func(ctx context.Context) (*analytics.Frame, error) {
		matches, err := client.Load(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.NewFrame(matches, cls)
	}
}

type interactionServer struct {
	pubKey ed25519.PublicKey
}

func (s *interactionServer) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, s.pubKey) {
		log.Printf("rugbybot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("rugbybot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("rugbybot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := dispatch(r.Context(), &inter)
	if resp == nil {
		log.Printf("rugbybot.int: unimplemented interation type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("rugbybot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("rugbybot.int: failed to write resp: err:%v", err)
	}
}

func dispatch(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	switch inter.Type {
	case discordgo.InteractionPing:
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		}
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			return &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("unknown command '%v'", name),
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}
		}
		return hdlr(ctx, inter)
	}

	return nil
}

func cmdHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:]), nil
}

// registerSlashCommands creates the /rugby command, or edits it when cmdID
// is set and its definition no longer matches lastHash.
func registerSlashCommands(client *discordgo.Session, appID string,
	cmdID string, lastHash string) {

	cmd := rugbyCommand()

	if cmdID == "" {
		created, err := client.ApplicationCommandCreate(appID, "", cmd)
		if err != nil {
			log.Printf("rugbybot.reg: failed to register %v: %v", cmd.Name, err)
			return
		}
		log.Printf("rugbybot.reg: registered %v(cmdID:%v); set RUGBYBOT_CMDID",
			created.Name, created.ID)
		return
	}

	hash, err := cmdHash(cmd)
	if err != nil {
		log.Printf("rugbybot.reg: failed to marshal cmd: %v", err)
		return
	}
	if hash == lastHash {
		return
	}
	log.Printf("rugbybot.reg: updating cmd reg; please set RUGBYBOT_CMDHASH to %v",
		hash)

	updated, err := client.ApplicationCommandEdit(appID, "", cmdID, cmd)
	if err != nil {
		log.Printf("rugbybot.reg: failed to update %v: %v", cmd.Name, err)
		return
	}
	log.Printf("rugbybot.reg: updated %v(cmdID:%v)", updated.Name, updated.ID)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	addr := flag.String("addr", internal.EnvOr("RUGBYBOT_ADDR", ":8080"),
		"Listen address")
	dataURL := flag.String("data-url", internal.EnvOr("RUGBY_DATA_URL",
		internal.DefaultDataURL), "Data service endpoint")
	cacheBucket := flag.String("cache-bucket", internal.EnvOr("RUGBY_CACHE_BUCKET", ""),
		"S3 bucket for the http cache (in-memory when empty)")
	cacheTTL := flag.Duration("cache-ttl", internal.EnvDurationOr("RUGBY_CACHE_TTL",
		10*time.Minute), "How long fetched match data is reused")
	classifierPath := flag.String("classifier", "",
		"JSON file overriding the competition substrings")
	flag.Parse()

	token := os.Getenv("RUGBYBOT_TOKEN")
	pubKeyText := os.Getenv("RUGBYBOT_PUBKEY")
	appID := os.Getenv("RUGBYBOT_APPID")
	if token == "" || pubKeyText == "" || appID == "" {
		log.Fatalf("rugbybot.main: RUGBYBOT_TOKEN, RUGBYBOT_PUBKEY and RUGBYBOT_APPID must be set")
	}

	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil {
		log.Fatalf("rugbybot.main: Failed to parse public key: %v", err)
	}
	client, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("rugbybot.main: Failed to initialize discord client: %v", err)
	}
	cls, err := rugby.ClassifierFromFlag(*classifierPath)
	if err != nil {
		log.Fatalf("rugbybot.main: %v", err)
	}

	ctx := context.Background()
	httpClient := internal.NewCachedHttpClient(ctx, *cacheBucket, *cacheTTL)
	loadFrame = newFrameLoader(httpClient, *dataURL, cls)

	go registerSlashCommands(client, appID, os.Getenv("RUGBYBOT_CMDID"),
		os.Getenv("RUGBYBOT_CMDHASH"))

	srv := &interactionServer{pubKey: ed25519.PublicKey(pubKeyBytes)}
	http.HandleFunc("/DiscordBot/Interaction", srv.interactionHandler)
	log.Printf("rugbybot.main: starting server on %v", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("rugbybot.main: Serve failed: %v", err)
	}

	log.Printf("rugbybot.main: exiting")
}
