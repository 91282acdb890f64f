package session

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var errMalformedRecord = errors.New("malformed session record")

func encodeRecord(rec Record) string {
	return strconv.FormatInt(rec.ExpiresAt.Unix(), 10) + "|" + rec.UserID
}

func decodeRecord(raw string) (Record, error) {
	expiry, userID, ok := strings.Cut(raw, "|")
	if !ok || userID == "" {
		return Record{}, errMalformedRecord
	}
	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return Record{}, errMalformedRecord
	}
	return Record{UserID: userID, ExpiresAt: time.Unix(unix, 0).UTC()}, nil
}
