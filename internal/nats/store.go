package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultDraftBucket is the KeyValue bucket holding wizard drafts.
const DefaultDraftBucket = "listwiz_drafts"

// SetupDraftBucket creates or updates the KeyValue bucket for drafts.
// Only the latest value per key is kept; a zero ttl keeps drafts forever.
func SetupDraftBucket(ctx context.Context, js jetstream.JetStream, bucket string, ttl time.Duration) (jetstream.KeyValue, error) {
	if bucket == "" {
		bucket = DefaultDraftBucket
	}
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "listing wizard drafts",
		History:     1,
		TTL:         ttl,
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("creating draft bucket %s: %w", bucket, err)
	}
	return kv, nil
}
