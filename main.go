package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"battlelens/client"
	"battlelens/config"
	"battlelens/data"
	"battlelens/parser"
	"battlelens/replay"
	"battlelens/session"
	"battlelens/storage"
)

func parseTemplates() *template.Template {
	return template.Must(template.ParseGlob("templates/*.html"))
}

var templates = parseTemplates()

type server struct {
	cfg    *config.Config
	dialer *client.Dialer
	store  *storage.Store
	log    *slog.Logger
}

func (sv *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	err := templates.ExecuteTemplate(w, "index.html", nil)
	if err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}

func (sv *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if sv.store == nil {
		http.Error(w, "battle history disabled", http.StatusNotFound)
		return
	}
	records, err := sv.store.RecentBattles(r.Context(), 50)
	if err != nil {
		sv.log.Error("list battle history", "err", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (sv *server) handleConnect(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("roomid")
	if roomID == "" {
		http.Error(w, "room ID cannot be empty", http.StatusBadRequest)
		return
	}
	if prefix := sv.cfg.Stream.RoomPrefix; prefix != "" && !strings.HasPrefix(roomID, prefix) {
		roomID = prefix + roomID
	}
	sv.log.Info("connection request", "remote", r.RemoteAddr, "room", roomID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	sess := session.New(roomID, session.Options{
		TieBreak:     sv.cfg.GetTieBreak(),
		LogRetention: sv.cfg.Tracker.LogRetention,
		Logger:       sv.log,
	})

	const maxReconnects = 3
	for attempt := 0; attempt < maxReconnects; attempt++ {
		if attempt > 0 {
			fmt.Fprintf(w, "data: <p>Reconnecting to the battle stream... (attempt %d/%d)</p>\n\n",
				attempt+1, maxReconnects)
			flusher.Flush()
		}
		err := sv.streamBattle(r.Context(), w, flusher, roomID, sess)
		if err == nil || r.Context().Err() != nil {
			return
		}
		sv.log.Warn("battle stream interrupted", "room", roomID, "err", err)
	}
	fmt.Fprintf(w, "data: <p class='error'>Lost connection to the battle stream.</p>\n\n")
	flusher.Flush()
}

// streamBattle joins the room and pumps event batches through the session
// until the battle ends, the stream drops, or the client goes away.
func (sv *server) streamBattle(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, roomID string, sess *session.Session) error {
	sd, err := sv.dialer.Dial(ctx)
	if err != nil {
		fmt.Fprintf(w, "data: <p>Could not reach the battle stream: %v</p>\n\n", err)
		flusher.Flush()
		return err
	}
	defer sd.Close()

	if err := sd.JoinRoom(roomID); err != nil {
		fmt.Fprintf(w, "data: <p>Could not join room %s: %v</p>\n\n", template.HTMLEscapeString(roomID), err)
		flusher.Flush()
		return err
	}
	sv.log.Info("joined room", "room", roomID)
	fmt.Fprintf(w, "data: <p>Connected to room <strong>%s</strong>. Waiting for events...</p>\n\n",
		template.HTMLEscapeString(roomID))
	flusher.Flush()

	batches := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		for {
			batch, err := sd.ReadBatch()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case batches <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()

	ping := time.NewTicker(20 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ping.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case err := <-readErr:
			return err
		case batch := <-batches:
			result := sess.ProcessBatch(batch)
			if len(result.Entries) > 0 {
				fmt.Fprintf(w, "data: %s\n\n", sess.Record().RenderHTML(30))
				fmt.Fprintf(w, "data: %s\n\n", parser.RenderBattleState(sess.Tracker()))
				flusher.Flush()
			}
			if result.Ended {
				sv.recordBattle(ctx, roomID, result.Winner, sess)
				sv.log.Info("battle ended", "room", roomID, "winner", result.Winner)
				fmt.Fprintf(w, "data: <p>The battle has ended.</p>\n\n")
				flusher.Flush()
				return nil
			}
		}
	}
}

func (sv *server) recordBattle(ctx context.Context, roomID, winner string, sess *session.Session) {
	if sv.store == nil {
		return
	}
	err := sv.store.SaveBattle(ctx, storage.BattleRecord{
		RoomID:  roomID,
		Winner:  winner,
		Turns:   sess.Tracker().CurrentTurn(),
		EndedAt: time.Now(),
	})
	if err != nil {
		sv.log.Error("save battle history", "err", err)
	}
}

// runReplay analyzes a saved battle log instead of serving HTTP.
func runReplay(cfg *config.Config, log *slog.Logger) error {
	sess := session.New(cfg.Replay.FilePath, session.Options{
		TieBreak:     cfg.GetTieBreak(),
		LogRetention: cfg.Tracker.LogRetention,
		Logger:       log,
	})

	if cfg.Replay.Follow {
		follower := replay.NewFollower(cfg.Replay.FilePath, log)
		if err := follower.Follow(context.Background(), sess); err != nil && err != context.Canceled {
			return err
		}
	} else if err := replay.ParseFile(cfg.Replay.FilePath, sess); err != nil {
		return err
	}

	fmt.Println(parser.RenderBattleState(sess.Tracker()))
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if cfg.Replay.Templates != "" {
		if err := data.LoadTemplates(cfg.Replay.Templates); err != nil {
			log.Error("load message templates", "err", err)
			os.Exit(1)
		}
	}

	if cfg.Replay.FilePath != "" {
		if err := runReplay(cfg, log); err != nil {
			log.Error("replay failed", "err", err)
			os.Exit(1)
		}
		return
	}

	dialer, err := client.NewDialer(cfg.Stream.URL, log)
	if err != nil {
		log.Error("configure stream dialer", "err", err)
		os.Exit(1)
	}

	sv := &server{cfg: cfg, dialer: dialer, log: log}
	if cfg.Server.DatabasePath != "" {
		store, err := storage.Open(cfg.Server.DatabasePath)
		if err != nil {
			log.Error("open battle history", "err", err)
			os.Exit(1)
		}
		defer store.Close()
		sv.store = store
	}

	mux := http.NewServeMux()

	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	mux.HandleFunc("/", sv.handleIndex)
	mux.HandleFunc("/connect", sv.handleConnect)
	mux.HandleFunc("/history", sv.handleHistory)

	log.Info("server started", "addr", cfg.Server.Addr)
	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
