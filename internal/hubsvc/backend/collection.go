package backend

import (
	"context"
	"encoding/json"

	"github.com/avvvet/torcedor-hub/internal/hubsvc/session"
)

// StickerCount is the number of stickers ("figurinhas") the user owns.
// The sticker records themselves belong to the album subsystem and are
// not decoded.
func (c *Client) StickerCount(ctx context.Context, s session.Session) (int, error) {
	var stickers []json.RawMessage
	if err := c.getJSON(ctx, "/colecao/minhas-figurinhas", nil, s, &stickers); err != nil {
		return 0, err
	}
	return len(stickers), nil
}
