/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Seednode/triviabox/games"
	"github.com/Seednode/triviabox/pool"
)

//go:embed assets/*
var assets embed.FS

var templates = template.Must(template.ParseFS(assets, "assets/*.html"))

type gameCard struct {
	ID          string
	Title       string
	Description string
	Href        string
	Badges      []string
}

type homePage struct {
	Prefix   string
	Favicon  template.HTML
	Games    []gameCard
	Upcoming []pool.Upcoming
}

func serveHomePage(cfg *Config, catalog *games.Catalog, errs chan<- error) httprouter.Handle {
	upcoming, err := pool.LoadUpcoming()
	if err != nil {
		logf(cfg, "SERVE: No coming-soon list: %v", err)
	}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		page := homePage{
			Prefix:   cfg.prefix,
			Favicon:  template.HTML(getFavicon(cfg)),
			Upcoming: upcoming,
		}
		for _, def := range catalog.List() {
			page.Games = append(page.Games, gameCard{
				ID:          def.ID,
				Title:       def.Title,
				Description: def.Description,
				Href:        cfg.prefix + "/games/" + def.ID,
				Badges:      def.Badges,
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		cw := &countingWriter{w: w}
		if err := templates.ExecuteTemplate(cw, "home.html", page); err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Home page (%s) to %s in %s",
			humanReadableSize(cw.n),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveAssets(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		fname := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, cfg.prefix), "/")

		var contentType string
		switch strings.ToLower(filepath.Ext(fname)) {
		case ".css":
			contentType = "text/css; charset=utf-8"
		case ".js":
			contentType = "text/javascript; charset=utf-8"
		default:
			http.NotFound(w, r)

			return
		}

		data, err := assets.ReadFile(fname)
		if err != nil {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Content-Type", contentType)
		securityHeaders(cfg, w)

		_, err = w.Write(data)
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: *
Disallow: /games/

User-agent: GPTBot
Disallow: /

User-agent: CCBot
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}

// serveImages serves item pictures from the images directory next to the
// override datasets. Without --pool-dir there are none and the clients fall
// back to text cards.
func serveImages(cfg *Config, errs chan<- error) httprouter.Handle {
	var images fs.FS
	if cfg.poolDir != "" {
		images = os.DirFS(filepath.Join(cfg.poolDir, "images"))
	}

	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		fname := strings.TrimPrefix(p.ByName("image"), "/")

		if images == nil || !fs.ValidPath(fname) {
			http.NotFound(w, r)

			return
		}

		switch strings.ToLower(filepath.Ext(fname)) {
		case ".webp", ".png", ".jpg", ".jpeg", ".gif", ".svg":
		default:
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Cache-Control", "public, max-age=86400")
		securityHeaders(cfg, w)

		http.ServeFileFS(w, r, images, fname)
	}
}
