package websocket

import (
	"context"
	"encoding/json"
	"time"

	"pixel-canvas-server/internal/domain"
	"pixel-canvas-server/pkg/logger"
)

// defaultPublishTimeout bounds each publisher call so an unreachable relay
// cannot stall the request that changed the canvas.
const defaultPublishTimeout = 2 * time.Second

// Publisher forwards encoded messages beyond this process.
type Publisher interface {
	Publish(ctx context.Context, message []byte) error
}

// CanvasNotifier turns canvas changes into websocket messages for local
// viewers and any configured publishers.
type CanvasNotifier struct {
	manager        *Manager
	publishers     []Publisher
	publishTimeout time.Duration
	log            logger.Logger
}

func NewCanvasNotifier(manager *Manager, log logger.Logger, publishers ...Publisher) *CanvasNotifier {
	return &CanvasNotifier{
		manager:        manager,
		publishers:     publishers,
		publishTimeout: defaultPublishTimeout,
		log:            log.WithComponent("notifier"),
	}
}

func (n *CanvasNotifier) CellUpdated(ctx context.Context, cell *domain.Cell) {
	n.emit(ctx, TypeCellUpdated, cell)
}

func (n *CanvasNotifier) CanvasReset(ctx context.Context) {
	n.emit(ctx, TypeCanvasReset, nil)
}

func (n *CanvasNotifier) emit(ctx context.Context, msgType MessageType, payload interface{}) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		n.log.Errorf("failed to build %s message: %v", msgType, err)
		return
	}
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		n.log.Errorf("failed to encode %s message: %v", msgType, err)
		return
	}

	n.manager.BroadcastRaw(messageBytes)

	for _, p := range n.publishers {
		n.publish(ctx, p, msgType, messageBytes)
	}
}

func (n *CanvasNotifier) publish(ctx context.Context, p Publisher, msgType MessageType, message []byte) {
	ctx, cancel := context.WithTimeout(ctx, n.publishTimeout)
	defer cancel()

	if err := p.Publish(ctx, message); err != nil {
		n.log.Warnf("failed to publish %s message: %v", msgType, err)
	}
}
