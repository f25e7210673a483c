package dataset

import (
	"context"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/atomview/atomview/errors"
	"github.com/atomview/atomview/internal/httpclient"
)

const (
	ldaBaseURL = "https://www.openmx-square.org/atoms/LDA"
	upfBaseURL = "https://pseudopotentials.quantum-espresso.org"
)

var (
	upfLinkRe  = regexp.MustCompile(`href="(/upf_files/[^"]+\.UPF)"`)
	alogLinkRe = regexp.MustCompile(`(?i)href="([^"]+\.alog)"`)
)

// Fetcher downloads missing dataset files from the upstream archives.
// Downloads are paced by a shared rate limiter so a burst of unknown
// elements cannot hammer the mirrors.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

// NewFetcher builds a Fetcher. A nil logger disables logging.
func NewFetcher(logger *zap.SugaredLogger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Fetcher{
		client:  httpclient.New(30 * time.Second),
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 2),
		logger:  logger,
	}
}

// FetchLDA downloads the best-matching OpenMX .alog file for the
// element into destDir and returns its path.
func (f *Fetcher) FetchLDA(ctx context.Context, symbol, destDir string) (string, error) {
	page, err := f.fetchPage(ctx, ldaBaseURL+"/"+symbol+"/")
	if err != nil {
		return "", errors.Wrapf(err, "dataset: LDA index for %s", symbol)
	}

	links := dedupeLinks(alogLinkRe, page)
	if len(links) == 0 {
		return "", errors.Wrapf(ErrUnsupportedState, "no LDA .alog links for %s", symbol)
	}

	best := pickBest(links, func(name string) int {
		return alogScore(name, symbol)
	})

	dest := filepath.Join(destDir, path.Base(best))
	if err := f.download(ctx, resolveLink(ldaBaseURL+"/"+symbol+"/", best), dest); err != nil {
		return "", err
	}
	return dest, nil
}

// FetchUPF downloads the best-matching PSLibrary UPF file for the
// element into destDir and returns its path. The scoring prefers PBE
// PAW sets from the current psl release, with relativistic sets only
// for heavy elements.
func (f *Fetcher) FetchUPF(ctx context.Context, symbol string, z int, destDir string) (string, error) {
	page, err := f.fetchPage(ctx, upfBaseURL+"/legacy_tables/ps-library/"+strings.ToLower(symbol))
	if err != nil {
		return "", errors.Wrapf(err, "dataset: PSLibrary index for %s", symbol)
	}

	links := dedupeLinks(upfLinkRe, page)
	if len(links) == 0 {
		return "", errors.Wrapf(ErrUnsupportedState, "no UPF links for %s", symbol)
	}

	best := pickBest(links, func(name string) int {
		return upfScore(name, z)
	})

	dest := filepath.Join(destDir, symbol+".UPF")
	if err := f.download(ctx, resolveLink(upfBaseURL, best), dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("unexpected status %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}
	f.logger.Infow("Downloading dataset file", "url", url, "dest", dest)
	client := &getter.Client{
		Ctx:  ctx,
		Src:  url,
		Dst:  dest,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return errors.Wrapf(err, "dataset: download %s", url)
	}
	return nil
}

func dedupeLinks(re *regexp.Regexp, page string) []string {
	seen := make(map[string]bool)
	var links []string
	for _, m := range re.FindAllStringSubmatch(page, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			links = append(links, m[1])
		}
	}
	sort.Strings(links)
	return links
}

func resolveLink(base, link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	if strings.HasPrefix(link, "/") {
		if i := strings.Index(base[len("https://"):], "/"); i >= 0 {
			return base[:len("https://")+i] + link
		}
		return strings.TrimSuffix(base, "/") + link
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + link
}

// alogScore ranks OpenMX .alog file names: standard cutoff variants
// (names ending in "0.alog") first, then files named for the element.
func alogScore(name, symbol string) int {
	score := 0
	if strings.HasSuffix(name, "0.alog") {
		score += 100
	}
	if strings.HasPrefix(name, strings.ToLower(symbol)) {
		score += 10
	}
	return score
}

// upfScore ranks PSLibrary file names: PBE PAW sets from the current
// psl release first, relativistic sets only for heavy elements.
func upfScore(name string, z int) int {
	score := 0
	if strings.Contains(name, "pbe") {
		score += 100
	}
	if strings.Contains(name, "kjpaw") {
		score += 60
	}
	if strings.Contains(name, "rrkjus") {
		score += 30
	}
	if strings.Contains(name, "psl.1.0.0") {
		score += 20
	}
	if strings.Contains(name, "rel-") {
		if z >= 36 {
			score += 10
		} else {
			score -= 5
		}
	}
	if strings.Contains(name, "pbesol") {
		score -= 5
	}
	if strings.Contains(name, "pz") {
		score -= 10
	}
	if strings.Contains(name, "0.1") {
		score -= 5
	}
	return score
}

// pickBest returns the highest-scoring link; ties keep the first in
// sorted order for deterministic selection.
func pickBest(links []string, score func(string) int) string {
	best := links[0]
	bestScore := score(strings.ToLower(best))
	for _, link := range links[1:] {
		if s := score(strings.ToLower(link)); s > bestScore {
			best, bestScore = link, s
		}
	}
	return best
}
