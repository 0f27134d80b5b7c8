package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/anuvad/internal/config"
	"github.com/mgpai22/anuvad/internal/convert"
	"github.com/mgpai22/anuvad/internal/logging"
	"github.com/mgpai22/anuvad/internal/video"
)

//go:embed all:static
var staticFiles embed.FS

// Pipeline is the slice of the converter the web handlers drive.
type Pipeline interface {
	Convert(ctx context.Context, url string, opts convert.Options) (*convert.Result, error)
	ExportSubtitles(ctx context.Context, url string, opts convert.Options) (*convert.Result, error)
	ExtractAudio(ctx context.Context, url string, opts convert.Options) (*convert.Result, error)
}

// Server exposes the conversion pipeline over HTTP for the browser UI.
// Accepted requests run in background goroutines; clients poll the
// task endpoint for progress and fetch outputs by file name.
type Server struct {
	cfg        *config.Config
	configPath string
	pipeline   Pipeline
	tasks      *TaskManager
	logger     *logging.Logger
}

// NewServer wires the handlers. configPath is where a key submitted
// through the UI gets persisted; empty keeps it in memory only.
func NewServer(cfg *config.Config, configPath string, pipeline Pipeline, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		cfg:        cfg,
		configPath: configPath,
		pipeline:   pipeline,
		tasks:      NewTaskManager(),
		logger:     logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/convert", s.handleConvert)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("POST /api/audio", s.handleAudio)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleTask)
	mux.HandleFunc("GET /api/files/{name}", s.handleFile)
	mux.HandleFunc("GET /api/config", s.handleConfigGet)
	mux.HandleFunc("POST /api/config", s.handleConfigSave)

	staticFS, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infow("Web UI listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type convertRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Mode    string `json:"mode"`
	Track   string `json:"track"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	mode := video.EmbedMode(req.Mode)
	switch mode {
	case "", video.EmbedModeSoft, video.EmbedModeHard:
	default:
		http.Error(w, "mode must be soft or hard", http.StatusBadRequest)
		return
	}

	track := convert.Track(req.Track)
	switch track {
	case "", convert.TrackBilingual, convert.TrackTranslation, convert.TrackOriginal:
	default:
		http.Error(w, "track must be bilingual, translation, or original", http.StatusBadRequest)
		return
	}

	id := s.tasks.Create("convert")
	go s.run(id, func(ctx context.Context, progress func(string, int)) (*convert.Result, error) {
		return s.pipeline.Convert(ctx, req.URL, convert.Options{
			Mode:     mode,
			Track:    track,
			Quality:  req.Quality,
			Progress: progress,
		})
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

type urlRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	id := s.tasks.Create("export")
	go s.run(id, func(ctx context.Context, progress func(string, int)) (*convert.Result, error) {
		return s.pipeline.ExportSubtitles(ctx, req.URL, convert.Options{Progress: progress})
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	id := s.tasks.Create("audio")
	go s.run(id, func(ctx context.Context, progress func(string, int)) (*convert.Result, error) {
		return s.pipeline.ExtractAudio(ctx, req.URL, convert.Options{Progress: progress})
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

// run executes one pipeline call in the background, mirroring its
// progress into the task record.
func (s *Server) run(id string, fn func(ctx context.Context, progress func(string, int)) (*convert.Result, error)) {
	s.tasks.Start(id)
	progress := func(stage string, percent int) {
		s.tasks.SetProgress(id, stage, percent)
	}

	result, err := fn(context.Background(), progress)
	if err != nil {
		s.logger.Warnw("Task failed", "id", id, "error", err)
		s.tasks.Fail(id, err)
		return
	}
	s.tasks.Finish(id, resultFiles(result))
}

// resultFiles lists the output basenames a finished task offers for
// download.
func resultFiles(result *convert.Result) []string {
	var files []string
	if result.VideoPath != "" {
		files = append(files, filepath.Base(result.VideoPath))
	}
	if result.AudioPath != "" {
		files = append(files, filepath.Base(result.AudioPath))
	}
	for _, path := range result.SubtitlePaths {
		files = append(files, filepath.Base(path))
	}
	return files
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.tasks.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !validFileName(name) {
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

// validFileName accepts plain basenames only, keeping the file
// endpoint inside the output directory.
func validFileName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return name == filepath.Base(name)
}

type configStatus struct {
	Provider       string `json:"provider"`
	HasAPIKey      bool   `json:"has_api_key"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

func (s *Server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configStatus{
		Provider:       s.cfg.Provider,
		HasAPIKey:      s.cfg.ResolveAPIKey(s.cfg.Provider) != "",
		SourceLanguage: s.cfg.SourceLanguage,
		TargetLanguage: s.cfg.TargetLanguage,
	})
}

type configSaveRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) handleConfigSave(w http.ResponseWriter, r *http.Request) {
	var req configSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	key := strings.TrimSpace(req.APIKey)
	if len(key) < 10 {
		http.Error(w, "API key looks too short", http.StatusBadRequest)
		return
	}

	s.cfg.APIKey = key
	if s.configPath != "" {
		if err := config.Save(s.configPath, s.cfg); err != nil {
			s.logger.Warnw("Failed to persist config", "path", s.configPath, "error", err)
			http.Error(w, "failed to save config", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
