package model

// Instrument is a tradable asset with display metadata and decimal precision.
type Instrument struct {
	ID              string            `json:"id" yaml:"id" validate:"required"`
	ExternalAssetID uint64            `json:"asaId" yaml:"asaId"`
	Name            string            `json:"asaName" yaml:"asaName"`
	Symbol          string            `json:"asaUnitName" yaml:"asaUnitName"`
	Decimals        uint8             `json:"asaDecimals" yaml:"asaDecimals" validate:"lte=19"`
	Chains          []InstrumentChain `json:"chains" yaml:"chains" validate:"dive"`
}

// InstrumentChain locates an instrument's token on one chain.
type InstrumentChain struct {
	ChainID      uint16 `json:"chainId" yaml:"chainId" validate:"required"`
	TokenAddress string `json:"tokenAddress" yaml:"tokenAddress"`
}

// RegistryEntry binds a slot id to an instrument.
type RegistryEntry struct {
	SlotID     uint8      `json:"slotId" yaml:"slotId"`
	Instrument Instrument `json:"instrument" yaml:"instrument"`
}

// Registry is an ordered instrument snapshot. Slot ids are not required to be unique.
type Registry []RegistryEntry
