package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"lipu/library"

	"github.com/robfig/cron/v3"
)

// Server is the lipu HTTP server plus its refresh schedule
type Server struct {
	lib        *library.Library
	httpServer *http.Server
	cron       *cron.Cron
	cronID     cron.EntryID
	mu         sync.Mutex
}

func NewServer(lib *library.Library, port string) *Server {
	return &Server{
		lib:  lib,
		cron: cron.New(),
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: NewRouter(lib),
		},
	}
}

// Start serves HTTP in the background.
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
	return nil
}

// StartCron schedules automatic refreshes. A tick that finds a refresh already
// running is skipped.
func (s *Server) StartCron(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(schedule, s.scheduledRefresh)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cronID = id
	s.cron.Start()
	log.Printf("Cron job started with schedule: %s", schedule)
	return nil
}

func (s *Server) scheduledRefresh() {
	log.Println("Cron triggered: starting scheduled refresh")
	_, err := s.lib.TryRefresh(context.Background())
	switch {
	case errors.Is(err, library.ErrRefreshRunning):
		log.Println("Cron skipped: refresh already running")
	case err != nil:
		log.Printf("Cron refresh error: %v", err)
	}
}

// Shutdown stops the schedule, waits for a running scheduled refresh, then
// drains HTTP connections.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")

	s.mu.Lock()
	stopped := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-stopped.Done():
	case <-ctx.Done():
		log.Println("⚠️  Scheduled refresh still running at shutdown")
	}

	return s.httpServer.Shutdown(ctx)
}
