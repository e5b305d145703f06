package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgekit/forge/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
)

// ErrNotFound is returned when a channel does not publish a package
var ErrNotFound = errors.New("package not found")

// Resolution is what a require triple resolved to
type Resolution struct {
	Ref     models.Ref
	Version string
	Remote  string
	URL     string
	SHA256  string
	Size    int64
}

// Resolver resolves require triples against the configured channels,
// consulted in declaration order.
type Resolver struct {
	remotes []models.Remote
	clients map[string]*Client
}

// NewResolver creates a resolver over the given channels
func NewResolver(remotes []models.Remote) *Resolver {
	clients := make(map[string]*Client, len(remotes))
	for _, r := range remotes {
		clients[r.Name] = NewClient(r.URL)
	}
	return &Resolver{remotes: remotes, clients: clients}
}

// Resolve finds the artifact satisfying a require triple. The first
// channel publishing the package wins; later channels are fallback only.
func (r *Resolver) Resolve(ctx context.Context, req models.Ref) (*Resolution, error) {
	if len(r.remotes) == 0 {
		return nil, resolveErr(req, fmt.Errorf("no remotes configured"))
	}

	for _, rem := range r.remotes {
		index, err := r.clients[rem.Name].Index(ctx, req.Name)
		if errors.Is(err, ErrNotFound) {
			logrus.Debugf("Remote %s does not publish %s", rem.Name, req.Name)
			continue
		}
		if err != nil {
			return nil, resolveErr(req, fmt.Errorf("remote %s: %w", rem.Name, err))
		}

		entry, err := pick(index.Versions, req)
		if err != nil {
			return nil, resolveErr(req, fmt.Errorf("remote %s: %w", rem.Name, err))
		}

		logrus.Debugf("Resolved %s to %s from %s", req, entry.Version, rem.Name)
		return &Resolution{
			Ref:     req,
			Version: entry.Version,
			Remote:  rem.Name,
			URL:     entry.URL,
			SHA256:  entry.SHA256,
			Size:    entry.Size,
		}, nil
	}

	return nil, resolveErr(req, fmt.Errorf("not published on any configured remote"))
}

// pick selects the version entry satisfying the require. An exact
// version matches directly; "latest" takes the highest semantic
// version on the require's channel.
func pick(entries []VersionEntry, req models.Ref) (*VersionEntry, error) {
	var candidates []VersionEntry
	for _, e := range entries {
		if req.Channel != "" && e.Channel != req.Channel {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no versions on channel %q", req.Channel)
	}

	if req.Version != "latest" {
		for i := range candidates {
			if candidates[i].Version == req.Version {
				return &candidates[i], nil
			}
		}
		return nil, fmt.Errorf("version %s not published", req.Version)
	}

	best := -1
	for i := range candidates {
		if best < 0 || semver.Compare(canon(candidates[i].Version), canon(candidates[best].Version)) > 0 {
			best = i
		}
	}
	return &candidates[best], nil
}

// canon normalizes a bare channel version for semver comparison
func canon(v string) string {
	if v == "" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

func resolveErr(req models.Ref, err error) error {
	return &models.ForgeError{Type: models.ErrResolve, Ref: req.String(), Err: err}
}
