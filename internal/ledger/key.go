package ledger

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// billingKeyPaths are the identity fields tried in order. The nested
// message id is the API call id and the most stable; timestamp-like fields
// are a last resort before giving up on identity entirely.
var billingKeyPaths = []string{"message.id", "id", "uuid", "timestamp", "receivedAt"}

// ResolveBillingKey derives the stable identity key for a record, so
// repeated or partial emissions of one logical API call collapse to a
// single ledger entry. When no identity field exists the position index is
// used: unique, but deduplication is disabled for that record.
func ResolveBillingKey(raw []byte, index int) string {
	root := gjson.ParseBytes(raw)
	for _, p := range billingKeyPaths {
		if v := root.Get(p); v.Exists() {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return "seq-" + strconv.Itoa(index)
}
