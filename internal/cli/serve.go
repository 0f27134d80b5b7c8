package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/mgpai22/anuvad/internal/config"
	"github.com/mgpai22/anuvad/internal/convert"
	"github.com/mgpai22/anuvad/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Serve the browser UI for converting videos without the command line.

The UI offers the same workflows as the CLI: bilingual video,
single-language video, MP3 extraction, and subtitle-only export.
Finished files are downloaded straight from the browser. An API key
saved through the UI is written back to the config file.

Examples:
  anuvad serve
  anuvad serve --addr :9090 --open`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().
		StringP("addr", "a", "", "Listen address (default from config, falls back to :8080)")
	serveCmd.Flags().
		Bool("open", false, "Open the UI in a browser after startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	openBrowser, _ := cmd.Flags().GetBool("open")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.WebAddr
	}

	converter, err := convert.New(cfg, logger, convert.Deps{})
	if err != nil {
		return err
	}

	// keys saved through the UI land in the loaded config file, or a
	// fresh anuvad.yaml when none exists yet
	savePath := configPath
	if savePath == "" {
		savePath = config.DefaultPath()
	}
	if savePath == "" {
		savePath = "anuvad.yaml"
	}

	server := web.NewServer(cfg, savePath, converter, logger)

	if openBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openURL(browserURL(addr))
		}()
	}

	return server.ListenAndServe(addr)
}

func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return fmt.Sprintf("http://localhost%s", addr)
	}
	return fmt.Sprintf("http://%s", addr)
}

func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
