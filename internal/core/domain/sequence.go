package domain

// SeriesStrategy decides how numbers within a series are produced.
type SeriesStrategy string

const (
	// StrategySequential yields gap-free PREFIX-0001, PREFIX-0002, ... from a counter row.
	StrategySequential SeriesStrategy = "SEQUENTIAL"
	// StrategyCollisionResistant yields PREFIX-<ULID>; used where concurrent writers are frequent.
	StrategyCollisionResistant SeriesStrategy = "COLLISION_RESISTANT"
)

// Series describes one document number series.
type Series struct {
	Prefix     string
	Strategy   SeriesStrategy
	Width      int   // Zero padding of the numeric suffix
	FirstValue int64 // Used when the series has never issued a number
}

var (
	SeriesJournalEntry    = Series{Prefix: "JE", Strategy: StrategySequential, Width: 4, FirstValue: 1}
	SeriesVendorBill      = Series{Prefix: "VB", Strategy: StrategySequential, Width: 4, FirstValue: 1}
	SeriesStockAdjustment = Series{Prefix: "ADJ", Strategy: StrategySequential, Width: 4, FirstValue: 1}
	SeriesFuelLog         = Series{Prefix: "FUEL", Strategy: StrategySequential, Width: 5, FirstValue: 1}
	SeriesPointOfSale     = Series{Prefix: "POS", Strategy: StrategyCollisionResistant}
	SeriesGoodsReceipt    = Series{Prefix: "GRN", Strategy: StrategyCollisionResistant}
)

// KnownSeries indexes every series by prefix.
var KnownSeries = map[string]Series{
	SeriesJournalEntry.Prefix:    SeriesJournalEntry,
	SeriesVendorBill.Prefix:      SeriesVendorBill,
	SeriesStockAdjustment.Prefix: SeriesStockAdjustment,
	SeriesFuelLog.Prefix:         SeriesFuelLog,
	SeriesPointOfSale.Prefix:     SeriesPointOfSale,
	SeriesGoodsReceipt.Prefix:    SeriesGoodsReceipt,
}
