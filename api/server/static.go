package server

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"deskflow/api/dto"
	"deskflow/internal/config"

	"github.com/gin-gonic/gin"
)

// staticRoutes wires the thin shell around the core: advertised server
// addresses, the bundled admin UI and the client download directory.
func (s *Server) staticRoutes(cfg *config.Config) error {
	sa := dto.ServerAddress{
		IDServer:    cfg.IDServer,
		RelayServer: cfg.RelayServer,
		APIServer:   cfg.APIServer,
	}
	if cfg.PublicKeyFile != "" {
		raw, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			s.logger.Warningf("read public key file %q failed: %v", cfg.PublicKeyFile, err)
		} else {
			sa.Pubkey = strings.TrimSpace(string(raw))
		}
	}
	s.GET("/server_address", func(c *gin.Context) {
		writeOk(c, sa)
	})

	if cfg.StaticDir != "" {
		s.logger.Verbosef("static dir: %s", cfg.StaticDir)
		s.Static("/static", cfg.StaticDir)
		s.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/static/")
		})
	}

	if cfg.DownloadDir != "" {
		s.logger.Verbosef("download dir: %s", cfg.DownloadDir)
		entries, err := os.ReadDir(cfg.DownloadDir)
		if err != nil {
			return fmt.Errorf("遍历下载目录失败: %w", err)
		}
		// the listing is scanned once at startup, like the rest of
		// the shell it has no background refresh
		var links []dto.DownloadInfo
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			links = append(links, dto.DownloadInfo{
				Name: e.Name(),
				URL:  "/download/" + e.Name(),
			})
		}
		s.Static("/download", cfg.DownloadDir)
		s.GET("/download_list", func(c *gin.Context) {
			writeOk(c, dto.DownloadList{Links: links})
		})
	}

	s.metricsRoute()

	return nil
}
