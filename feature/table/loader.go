package table

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/observer"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader downloads difficulty tables.
type Loader struct {
	cfg    Config
	client *http.Client
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// NewLoader creates a Loader.
func NewLoader(cfg Config, opts ...Option) *Loader {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	l := &Loader{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the table page at tableURL, follows its meta tag to the header JSON
// and reads the chart list the header points to.
//
// Both the header URL and the data URL are resolved against tableURL.
func (l *Loader) Load(ctx context.Context, tableURL string, obs observer.Observer) (*Table, error) {
	if obs == nil {
		obs = observer.Nop{}
	}
	base, err := parseTableURL(tableURL)
	if err != nil {
		return nil, err
	}

	obs.Status(fmt.Sprintf("Retrieving table: %s", tableURL))

	page, err := l.get(ctx, "retrieve table", tableURL)
	if err != nil {
		return nil, err
	}
	ref, ok, err := findMeta(bytes.NewReader(page), l.cfg.metaName())
	if err != nil {
		return nil, apperr.Parse("parse table page", err)
	}
	if !ok || ref == "" {
		return nil, apperr.Parse("retrieve table", errors.New("meta tag not found"))
	}

	headerURL, err := resolve(base, ref)
	if err != nil {
		return nil, apperr.Parse("resolve header url", err)
	}
	raw, err := l.get(ctx, "retrieve header json", headerURL)
	if err != nil {
		return nil, err
	}
	var h header
	if err := decodeJSON(raw, &h); err != nil {
		return nil, apperr.Parse("parse header json", err)
	}
	if h.Symbol == nil {
		return nil, apperr.Parse("parse header json", errors.New(`missing field "symbol"`))
	}
	if h.DataURL == nil || *h.DataURL == "" {
		return nil, apperr.Parse("parse header json", errors.New(`missing field "data_url"`))
	}

	dataURL, err := resolve(base, *h.DataURL)
	if err != nil {
		return nil, apperr.Parse("resolve data url", err)
	}
	raw, err = l.get(ctx, "retrieve data json", dataURL)
	if err != nil {
		return nil, err
	}
	var entries []entry
	if err := decodeJSON(raw, &entries); err != nil {
		return nil, apperr.Parse("parse data json", err)
	}

	t := &Table{
		URL:       tableURL,
		HeaderURL: headerURL,
		DataURL:   dataURL,
		Meta:      Meta{Symbol: *h.Symbol},
		RawCount:  len(entries),
	}
	if h.LevelOrder != nil {
		t.Meta.HasLevelOrder = true
		t.Meta.LevelOrder = make([]string, len(*h.LevelOrder))
		for i, lv := range *h.LevelOrder {
			t.Meta.LevelOrder[i] = string(lv)
		}
	}
	t.Charts, t.Skipped = dedupe(entries)

	if t.Skipped > 0 {
		obs.Log(fmt.Sprintf("Skipped %d table entries without an md5 hash.", t.Skipped), false)
	}
	obs.Status(fmt.Sprintf("%d unique charts in table (%d before removing dupes).", len(t.Charts), t.RawCount))

	return t, nil
}

func (l *Loader) get(ctx context.Context, op, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperr.Fetch(op, fmt.Errorf("unable to access url %s: %w", target, err))
	}
	if l.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", l.cfg.UserAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, apperr.Fetch(op, fmt.Errorf("unable to access url %s: %w", target, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Fetch(op, fmt.Errorf("unable to access url %s: http status code %d", target, resp.StatusCode))
	}

	limit := l.cfg.maxBody()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, apperr.Fetch(op, fmt.Errorf("failed to read %s: %w", target, err))
	}
	if int64(len(body)) > limit {
		return nil, apperr.Fetch(op, fmt.Errorf("response from %s exceeds %d bytes", target, limit))
	}
	return body, nil
}

func parseTableURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, apperr.Validation("enter table url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperr.Validation("invalid table url %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperr.Validation("invalid table url %q: scheme must be http or https", raw)
	}
	return u, nil
}

func resolve(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

func decodeJSON(data []byte, v any) error {
	data = bytes.TrimPrefix(data, utf8BOM)
	return json.Unmarshal(data, v)
}
