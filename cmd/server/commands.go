package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photoframe/internal/domain/media"
	applog "photoframe/internal/log"
	httptransport "photoframe/internal/transport/http"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP resolver service",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			logger := applog.WithComponent("server")

			handler := httptransport.NewHandler(a.service, a.prober, a.renderer, a.store)
			router := httptransport.NewRouter(handler)

			c := cors.New(cors.Options{
				AllowedOrigins: a.cfg.CORSOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "Range"},
			})

			srv := &http.Server{
				Addr:              a.cfg.ServerAddr,
				Handler:           c.Handler(router),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", a.cfg.ServerAddr).Str("version", version).Msg("server started")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info().Msg("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <url>",
		Short: "Report whether a video URL is playable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			playable := a.prober.Probe(cmd.Context(), args[0])
			return printJSON(cmd, map[string]interface{}{"url": args[0], "playable": playable})
		},
	}
}

func resolveCmd() *cobra.Command {
	var (
		id        int64
		fileType  string
		title     string
		msrc      string
		original  string
		converted string
		width     int
		height    int
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one file and print its payload and markup",
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := media.ParseFileType(fileType)
			if err != nil {
				return err
			}
			a, err := buildApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if width > 0 && height > 0 {
				ctx = media.ContextWithViewport(ctx, media.Viewport{Width: width, Height: height})
			}

			file := media.MediaFile{ID: id, Type: ft, Title: title, PlaceholderURL: msrc}
			resolved, resolveErr := a.service.Resolve(ctx, file, media.SourceURLBundle{Original: original, Converted: converted})

			html, err := a.renderer.Render(resolved.Payload)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			out := map[string]interface{}{"file": resolved, "html": html}
			if resolved.Payload != nil {
				out["payloadKind"] = resolved.Payload.Kind()
			}
			if resolveErr != nil {
				out["error"] = resolveErr.Error()
			}
			if err := printJSON(cmd, out); err != nil {
				return err
			}
			return resolveErr
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "File identifier")
	cmd.Flags().StringVar(&fileType, "type", "image", "File type: image, video, livePhoto, other or 0-3")
	cmd.Flags().StringVar(&title, "title", "", "File title, used for the download filename")
	cmd.Flags().StringVar(&msrc, "msrc", "", "Placeholder (thumbnail) URL")
	cmd.Flags().StringVar(&original, "original", "", "Original URLs, comma separated")
	cmd.Flags().StringVar(&converted, "converted", "", "Converted URLs, comma separated")
	cmd.Flags().IntVar(&width, "width", 0, "Viewport width (defaults to VIEWPORT_WIDTH)")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height (defaults to VIEWPORT_HEIGHT)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
