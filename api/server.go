package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"pocket-tracker/config"
	"pocket-tracker/database"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server

	db *database.RevenueDB
}

func New(db *database.RevenueDB, cfg *config.ServerConfig) *Server {
	router := gin.Default()
	router.Use(cors.Default())
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HttpPort),
		Handler: router,
	}

	return &Server{
		router: router,
		srv:    srv,
		db:     db,
	}
}

func (s *Server) Start() {
	s.router.GET("/checkpoint", s.checkpoint)
	s.router.GET("/days", s.days)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()
}

func (s *Server) Stop() {
	if err := s.srv.Shutdown(context.Background()); err != nil {
		panic(err)
	}
}

func (s *Server) checkpoint(c *gin.Context) {
	project, err := s.db.GetProject(c.DefaultQuery("project", "pocket"))
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"project":    project.Name,
		"checkpoint": project.Checkpoint,
	})
}

func (s *Server) days(c *gin.Context) {
	project, err := s.db.GetProject(c.DefaultQuery("project", "pocket"))
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	from, err := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "from must be a unix timestamp"})
		return
	}
	to, err := strconv.ParseInt(c.DefaultQuery("to", strconv.FormatInt(1<<62, 10)), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "to must be a unix timestamp"})
		return
	}

	days, err := s.db.GetDays(project.ID, from, to)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"project": project.Name,
		"days":    days,
	})
}
