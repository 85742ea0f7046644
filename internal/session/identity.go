package session

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const archiveIDLen = 12

// ArchiveID derives the content address for an external page snapshot from
// its source URL. The id is a pure function of the URL: identical URLs
// always collapse to the same archive regardless of referencing document or
// order of arrival.
func ArchiveID(sourceURL string) string {
	trimmed := strings.TrimSpace(sourceURL)
	if trimmed == "" {
		return ""
	}

	key := "noteimport:archive:" + trimmed
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256))
	if err != nil || uid == uuid.Nil {
		uid = uuid.NewSHA1(uuid.NameSpaceURL, []byte(trimmed))
	}

	return strings.ReplaceAll(uid.String(), "-", "")[:archiveIDLen]
}
