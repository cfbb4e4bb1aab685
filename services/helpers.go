package services

import "fmt"

// Broadcaster pushes messages to websocket rooms. Satisfied by *live.Hub;
// kept as an interface so service tests can stub it out.
type Broadcaster interface {
	BroadcastToRoom(room string, message interface{})
}

// Websocket rooms the services publish into.
const (
	RoomTournaments = "tournaments"
	RoomPredictions = "predictions"
)

// imageExtensionForContentType maps an upload's content type to the stored
// object key extension. Anything else is refused.
func imageExtensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidImageType, contentType)
	}
}
