// Package web provides the HTTP server of the feedback board:
// routing, sessions, embedded templates and lifecycle management.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"

	"github.com/feedbackboard/feedbackboard/config"
	"github.com/feedbackboard/feedbackboard/logger"
	"github.com/feedbackboard/feedbackboard/util/common"
	"github.com/feedbackboard/feedbackboard/util/random"
	"github.com/feedbackboard/feedbackboard/web/controller"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the feedback board web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	user     *controller.UserController
	feedback *controller.FeedbackController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable
// context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate() (*template.Template, error) {
	t := template.New("")
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, terr := t.ParseFS(htmlFS, path+"/*.html")
			if terr != nil {
				// folders without templates are fine
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// initRouter initializes gin, registers middleware, templates and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	secret := config.GetSessionSecret()
	if secret == "" {
		// Sessions won't survive a restart without a configured secret.
		secret = random.Seq(32)
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions(config.GetName(), store))

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group("/")
	s.user = controller.NewUserController(g)
	s.feedback = controller.NewFeedbackController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 not found")
	})

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}
