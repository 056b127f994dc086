package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/kario-app/taskfilter/log"
)

type Sync struct {
	ServerUrl   string        `long:"server-url" short:"s" env:"SERVER_URL" value-name:"str" default:"http://localhost" description:"URL of the taskfilter REST API."`
	AdminPasswd string        `long:"passwd" short:"p" env:"WEB_ADMIN_PASSWD" value-name:"str" description:"Password of user admin."`
	Timeout     time.Duration `long:"timeout" short:"t" env:"TIMEOUT" value-name:"duration" default:"60s" description:"Request timeout."`
}

// Execute asks the server to rebuild its tag catalogs and fails if any kind failed.
func (s *Sync) Execute(args []string) error {
	url := makeUrl(s.ServerUrl, "/api/admin/sync")
	req, err := http.NewRequest(http.MethodPost, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("cannot make request: %w", err)
	}
	req.SetBasicAuth("admin", s.AdminPasswd)
	log.Printf("[DEBUG] sync request: URL=%s", url)

	client := &http.Client{
		Timeout: s.Timeout,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] cannot close response: %v", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read response: %w", err)
	}
	log.Printf("[DEBUG] sync resp body: %s", respBody)

	if resp.StatusCode != 200 {
		return fmt.Errorf("sync error (status %d): %w", resp.StatusCode, readJsonError(resp.StatusCode, respBody))
	}

	res := map[string]string{}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return fmt.Errorf("cannot parse response (status %d): %w", resp.StatusCode, err)
	}

	kinds := make([]string, 0, len(res))
	for kind := range res {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	failed := 0
	for _, kind := range kinds {
		if res[kind] == "ok" {
			log.Printf("[INFO] %s: ok", kind)
		} else {
			log.Printf("[ERROR] %s: %s", kind, res[kind])
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d catalog(s) failed to sync", failed)
	}
	return nil
}
