package service

import (
	"context"
	"encoding/json"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/store"
	log "github.com/sirupsen/logrus"
)

// fetchOrSnapshot runs fetch and records its result under key. When fetch
// fails the last recorded value is returned with stale set. err is only
// returned when there is nothing to fall back to.
func fetchOrSnapshot[T any](ctx context.Context, snapshots store.SnapshotStore, key string, fetch func(context.Context) (T, error)) (value T, stale bool, err error) {
	value, err = fetch(ctx)
	if err == nil {
		if snapshots != nil {
			if data, mErr := json.Marshal(value); mErr == nil {
				if sErr := snapshots.Save(ctx, key, data); sErr != nil {
					log.Warnf("unable to save snapshot %s: %s", key, sErr)
				}
			}
		}
		return value, false, nil
	}

	if snapshots == nil {
		return value, false, err
	}

	snap, ok, lErr := snapshots.Load(ctx, key)
	if lErr != nil {
		log.Warnf("unable to load snapshot %s: %s", key, lErr)
	}
	if !ok || lErr != nil {
		return value, false, err
	}

	var cached T
	if uErr := json.Unmarshal(snap.Payload, &cached); uErr != nil {
		log.Warnf("corrupt snapshot %s: %s", key, uErr)
		return value, false, err
	}

	return cached, true, nil
}
