// Package httpapi exposes the assistant over HTTP.
package httpapi

import (
	"context"
	"errors"
	log "log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"maze/internal/store"
)

type Assistant interface {
	Respond(ctx context.Context, cmd string) string
	SessionID() string
	Tasks(ctx context.Context) ([]store.Task, error)
}

type commandRequest struct {
	Text string `json:"text"`
}

type commandResponse struct {
	Reply   string `json:"reply"`
	Session string `json:"session"`
}

type taskView struct {
	Number      int       `json:"number,omitempty"`
	Description string    `json:"task"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"time"`
}

type tasksResponse struct {
	Pending   []taskView `json:"pending"`
	Completed []taskView `json:"completed"`
}

// New builds the echo instance with every route registered.
func New(a Assistant) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	Register(e, a)
	return e
}

func Register(e *echo.Echo, a Assistant) {
	e.POST("/api/command", postCommand(a))
	e.GET("/api/tasks", getTasks(a))
	e.GET("/healthz", healthz)
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func postCommand(a Assistant) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req commandRequest
		if err := c.Bind(&req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		text := strings.TrimSpace(req.Text)
		if text == "" {
			return c.String(http.StatusBadRequest, "text is required")
		}

		reply := a.Respond(c.Request().Context(), text)
		return c.JSON(http.StatusOK, commandResponse{Reply: reply, Session: a.SessionID()})
	}
}

func getTasks(a Assistant) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := a.Tasks(c.Request().Context())
		if err != nil {
			log.Warn("Failed to list tasks", "err", err)
			return c.String(http.StatusServiceUnavailable, err.Error())
		}

		resp := tasksResponse{Pending: []taskView{}, Completed: []taskView{}}
		for _, t := range tasks {
			v := taskView{Description: t.Description, Done: t.Done, CreatedAt: t.CreatedAt.Time()}
			if t.Done {
				resp.Completed = append(resp.Completed, v)
				continue
			}
			v.Number = len(resp.Pending) + 1
			resp.Pending = append(resp.Pending, v)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// Serve runs e on addr until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("HTTP API listening", "addr", addr)
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
