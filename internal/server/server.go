// Package server exposes the rendered calendar feed on loopback so local
// calendar clients can subscribe to it.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-companion/internal/config"
)

// cacheItem stores the rendered feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer serves the generated ICS document over HTTP on 127.0.0.1.
type FeedServer struct {
	// cache uses atomic.Pointer for lock-free reads: the feed is read often
	// by clients and replaced rarely (only after a contact refresh), so this
	// avoids contention on the GET path.
	cache atomic.Pointer[cacheItem]
	Port  string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// Start runs the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeedRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
	lastMod := time.Now().UTC().Format(http.TimeFormat)

	// Atomic store: concurrent readers see either the old or the new complete
	// item, never a partial state.
	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: lastMod,
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleFeedRequest serves the ICS content with HTTP caching support.
func (s *FeedServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
