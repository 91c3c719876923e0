package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"maintenance-system/internal/events"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/eventbus"
)

// EquipmentListener выполняет каскад списания: после перевода заявки в scrap
// само оборудование помечается как scrapped. Сбой здесь не откатывает заявку,
// ошибка только логируется шиной.
type EquipmentListener struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentListener(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) *EquipmentListener {
	return &EquipmentListener{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

// Register подписывает слушателя на события шины.
func (l *EquipmentListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestScrappedEventName, l.HandleRequestScrapped)
}

func (l *EquipmentListener) HandleRequestScrapped(ctx context.Context, event eventbus.Event) error {
	scrapped, ok := event.(events.RequestScrappedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	if err := l.equipmentRepo.SetStatus(ctx, scrapped.EquipmentID, constants.EquipmentStatusScrapped); err != nil {
		return fmt.Errorf("не удалось списать оборудование %d по заявке %d: %w",
			scrapped.EquipmentID, scrapped.RequestID, err)
	}

	l.logger.Info("Оборудование списано по заявке",
		zap.Uint64("equipment_id", scrapped.EquipmentID),
		zap.Uint64("request_id", scrapped.RequestID),
	)
	return nil
}
