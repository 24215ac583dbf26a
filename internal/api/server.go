package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"project-tracker/internal/domain"
	apperrors "project-tracker/internal/errors"
	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// ProjectResponse is the wire form of a project
type ProjectResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskResponse is the wire form of a task
type TaskResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse answers register and login. Token and Username are empty on failure.
type AuthResponse struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message"`
}

type createTaskRequest struct {
	Title string `json:"title"`
}

func NewProjectResponse(p domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Status:    string(p.Status),
		Deleted:   p.Deleted,
		CreatedAt: p.CreatedAt,
	}
}

func NewTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Completed: t.Completed,
		Deleted:   t.Deleted,
		CreatedAt: t.CreatedAt,
	}
}

// Server serves the BusinessAPI over HTTP
type Server struct {
	api    BusinessAPI
	log    logrus.FieldLogger
	engine *gin.Engine
}

// NewServer builds the router. mode is a gin mode; empty selects release.
func NewServer(api BusinessAPI, log logrus.FieldLogger, mode string) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	s := &Server{api: api, log: log}
	s.engine = s.setupRouter()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("HTTP server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.loggerMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)

	secured := r.Group("/api")
	secured.Use(s.authMiddleware())

	secured.POST("/projects", s.handleCreateProject)
	secured.GET("/projects", s.handleListProjects)
	secured.GET("/projects/:id", s.handleGetProject)
	secured.DELETE("/projects/:id", s.handleDeleteProject)
	secured.PATCH("/projects/:id/activate", s.handleActivateProject)
	secured.POST("/projects/:id/tasks", s.handleCreateTask)
	secured.GET("/projects/:id/tasks", s.handleListTasks)

	secured.PATCH("/tasks/:id/complete", s.handleCompleteTask)
	secured.DELETE("/tasks/:id", s.handleDeleteTask)

	return r
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.log.WithFields(logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("HTTP request")
	}
}

// authMiddleware resolves the bearer token into the request context principal
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithProblem(c, s.log, apperrors.NewUnauthenticatedError("missing authorization header"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortWithProblem(c, s.log, apperrors.NewUnauthenticatedError("invalid authorization header format"))
			return
		}

		ctx, err := s.api.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			abortWithProblem(c, s.log, err)
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var cmd services.RegisterUserCommand
	if !s.bind(c, &cmd) {
		return
	}

	result, err := s.api.Register(c.Request.Context(), cmd)
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	s.writeAuthResult(c, result, http.StatusCreated)
}

func (s *Server) handleLogin(c *gin.Context) {
	var cmd services.LoginUserCommand
	if !s.bind(c, &cmd) {
		return
	}

	result, err := s.api.Login(c.Request.Context(), cmd)
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	s.writeAuthResult(c, result, http.StatusOK)
}

func (s *Server) writeAuthResult(c *gin.Context, result *services.AuthResult, okStatus int) {
	if !result.Success {
		status := ProblemFor(result.Failure, c.Request.URL.Path).Status
		c.JSON(status, AuthResponse{Message: result.Message})
		return
	}

	c.JSON(okStatus, AuthResponse{
		Token:    result.Token,
		Username: result.User.Username,
		Message:  result.Message,
	})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var cmd services.CreateProjectCommand
	if !s.bind(c, &cmd) {
		return
	}

	project, err := s.api.CreateProject(c.Request.Context(), cmd)
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	c.JSON(http.StatusCreated, NewProjectResponse(*project))
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.api.ListProjects(c.Request.Context())
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, NewProjectResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.api.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, NewProjectResponse(*project))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.api.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleActivateProject(c *gin.Context) {
	project, err := s.api.ActivateProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, NewProjectResponse(*project))
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if !s.bind(c, &req) {
		return
	}

	task, err := s.api.CreateTask(c.Request.Context(), services.CreateTaskCommand{
		ProjectID: c.Param("id"),
		Title:     req.Title,
	})
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	c.JSON(http.StatusCreated, NewTaskResponse(*task))
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.api.ListTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}

	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	task, err := s.api.CompleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, NewTaskResponse(*task))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.api.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		abortWithProblem(c, s.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bind decodes the JSON body. Field rules are checked later by the BusinessAPI.
func (s *Server) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithProblem(c, s.log, apperrors.WrapError(err, apperrors.ErrorTypeInvalidInput, "malformed request body"))
		return false
	}
	return true
}
