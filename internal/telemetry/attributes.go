package telemetry

import "go.opentelemetry.io/otel/attribute"

// Span attribute keys shared by the ledger and pending services
const (
	AttrCharacterID = attribute.Key("ledger.character_id")
	AttrOwnerID     = attribute.Key("ledger.owner_id")
	AttrSlot        = attribute.Key("ledger.slot")
	AttrItem        = attribute.Key("ledger.item")
	AttrAmount      = attribute.Key("ledger.amount")
	AttrQuantity    = attribute.Key("ledger.quantity")
	AttrPromptID    = attribute.Key("pending.prompt_id")
	AttrRejection   = attribute.Key("ledger.rejection")
)
