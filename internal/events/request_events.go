package events

const RequestScrappedEventName = "request.scrapped"

// RequestScrappedEvent публикуется после коммита транзакции, переведшей
// заявку в статус scrap.
type RequestScrappedEvent struct {
	RequestID   uint64
	EquipmentID uint64
	ChangedBy   uint64
}

func (e RequestScrappedEvent) Name() string {
	return RequestScrappedEventName
}
