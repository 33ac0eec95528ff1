package video

import "strings"

// Kind tells the client which player to use for a reference.
type Kind string

const (
	KindRemote Kind = "remote"
	KindLocal  Kind = "local"
)

// Source is the playback descriptor produced for a video reference.
type Source struct {
	Kind Kind   `json:"kind"`
	URL  string `json:"url"`
}

// Host tokens that mark a reference as remotely hosted. Anything else is
// served from the local media route.
var remoteHostTokens = []string{
	"youtube.com",
	"youtu.be",
}

const (
	embedBaseURL   = "https://www.youtube.com/embed/"
	localMediaPath = "/media/"
	localMediaExt  = ".mp4"
)

// Resolve classifies a backend-supplied video reference and builds its
// playable location. Total over non-empty input: a reference containing a
// known remote host token becomes an embed URL, everything else maps to a
// local media path. An empty reference yields a zero Source.
func Resolve(ref string) Source {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Source{}
	}

	for _, token := range remoteHostTokens {
		if strings.Contains(ref, token) {
			return Source{
				Kind: KindRemote,
				URL:  embedBaseURL + extractRemoteID(ref),
			}
		}
	}

	return Source{
		Kind: KindLocal,
		URL:  localMediaPath + ref + localMediaExt,
	}
}

// extractRemoteID pulls the video id out of the common YouTube URL shapes:
// youtu.be/<id>, watch?v=<id> and embed/<id>. Falls back to the last path
// segment so an unrecognized shape still produces a stable embed target.
func extractRemoteID(ref string) string {
	if i := strings.Index(ref, "watch?v="); i >= 0 {
		id := ref[i+len("watch?v="):]
		if j := strings.IndexAny(id, "&#"); j >= 0 {
			id = id[:j]
		}
		return id
	}

	trimmed := strings.TrimRight(ref, "/")
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
