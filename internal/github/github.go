// Package github provides an API for accessing the GitHub API.
package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-version"
)

var ErrHttpError = errors.New("HTTP error")

// VersionInfo represents the version information for an update check.
type VersionInfo struct {
	Local         string
	Remote        string
	Newest        string
	IsRemoteNewer bool
}

// AvailableUpdate compares the local version of a repo with the latest release
// on GitHub and reports whether an update is available.
func AvailableUpdate(owner, repo, localVersion string) (VersionInfo, error) {
	return availableUpdate(owner, repo, localVersion, fetchGitHubLatest)
}

func availableUpdate(owner, repo, localVersion string, fetch func(owner, repo string) (string, error)) (VersionInfo, error) {
	local, err := version.NewVersion(localVersion)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("invalid local version %q: %w", localVersion, err)
	}
	remoteVersion, err := fetch(owner, repo)
	if err != nil {
		return VersionInfo{}, err
	}
	remote, err := version.NewVersion(remoteVersion)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("invalid remote version %q: %w", remoteVersion, err)
	}
	v := VersionInfo{
		Local:  local.String(),
		Remote: remote.String(),
	}
	if remote.GreaterThan(local) {
		v.Newest = remote.String()
		v.IsRemoteNewer = true
	} else {
		v.Newest = local.String()
	}
	return v, nil
}

func fetchGitHubLatest(owner, repo string) (string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", owner, repo)
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s: %w", resp.Status, ErrHttpError)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(data, &release); err != nil {
		return "", err
	}
	return release.TagName, nil
}
