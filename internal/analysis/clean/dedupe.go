package clean

import (
	"github.com/Alias1177/pairscan/internal/model"
)

type candleKey struct {
	openTime, closeTime                int64
	open, high, low, close, volume     float64
	quoteVolume, takerBase, takerQuote float64
	tradeCount                         int64
}

func keyOfCandle(c model.Candle) candleKey {
	return candleKey{
		openTime:    c.OpenTime.UnixNano(),
		closeTime:   c.CloseTime.UnixNano(),
		open:        c.Open,
		high:        c.High,
		low:         c.Low,
		close:       c.Close,
		volume:      c.Volume,
		quoteVolume: c.QuoteVolume,
		takerBase:   c.TakerBuyBaseVolume,
		takerQuote:  c.TakerBuyQuoteVolume,
		tradeCount:  c.TradeCount,
	}
}

type tradeKey struct {
	id                    int64
	time                  int64
	price, qty, quoteQty  float64
	buyerMaker, bestMatch bool
}

func keyOfTrade(t model.Trade) tradeKey {
	return tradeKey{
		id:         t.ID,
		time:       t.Time.UnixNano(),
		price:      t.Price,
		qty:        t.Quantity,
		quoteQty:   t.QuoteQuantity,
		buyerMaker: t.IsBuyerMaker,
		bestMatch:  t.IsBestMatch,
	}
}

// dedupe keeps the first occurrence of every key, preserving order
func dedupe[T any, K comparable](rows []T, key func(T) K) ([]T, []int, int) {
	seen := make(map[K]struct{}, len(rows))
	out := make([]T, 0, len(rows))
	positions := make([]int, 0, len(rows))
	dups := 0

	for i, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
		positions = append(positions, i)
	}
	return out, positions, dups
}

// Candles removes exact duplicates and enforces strictly increasing open
// times. A row that would break the ordering is reported as malformed.
// Running it on its own output is a no-op.
func Candles(rows []model.Candle) Result[model.Candle] {
	unique, positions, dups := dedupe(rows, keyOfCandle)

	res := Result[model.Candle]{
		Rows:   make([]model.Candle, 0, len(unique)),
		Report: model.CleanReport{Total: len(rows), Duplicates: dups},
	}

	for i, c := range unique {
		if n := len(res.Rows); n > 0 && !c.OpenTime.After(res.Rows[n-1].OpenTime) {
			res.Report.Malformed = append(res.Report.Malformed, &model.MalformedRecordError{
				Kind:   "candle",
				Row:    positions[i],
				Field:  model.KlineFieldNames[model.KlineOpenTime],
				Value:  c.OpenTime.Format("2006-01-02T15:04:05.000Z07:00"),
				Reason: "open_time not increasing",
			})
			continue
		}
		res.Rows = append(res.Rows, c)
	}

	res.Report.Kept = len(res.Rows)
	return res
}

// Trades removes exact duplicate trades. Shared timestamps are legitimate.
func Trades(rows []model.Trade) Result[model.Trade] {
	unique, _, dups := dedupe(rows, keyOfTrade)
	return Result[model.Trade]{
		Rows: unique,
		Report: model.CleanReport{
			Total:      len(rows),
			Kept:       len(unique),
			Duplicates: dups,
		},
	}
}

// RawCandles parses and deduplicates kline rows in one pass
func RawCandles(raw []model.RawCandle) Result[model.Candle] {
	parsed := ParseCandles(raw)
	cleaned := Candles(parsed.Rows)
	for _, m := range cleaned.Report.Malformed {
		m.Row = parsed.source[m.Row]
	}
	return Result[model.Candle]{
		Rows:   cleaned.Rows,
		Report: combine(parsed.Report, cleaned.Report),
	}
}

// RawTrades parses and deduplicates trade objects in one pass
func RawTrades(raw []model.RawTrade) Result[model.Trade] {
	parsed := ParseTrades(raw)
	cleaned := Trades(parsed.Rows)
	return Result[model.Trade]{
		Rows:   cleaned.Rows,
		Report: combine(parsed.Report, cleaned.Report),
	}
}

// combine folds a parse report and a dedupe report over the same input
func combine(parsed, deduped model.CleanReport) model.CleanReport {
	return model.CleanReport{
		Total:      parsed.Total,
		Kept:       deduped.Kept,
		Nulls:      parsed.Nulls,
		Duplicates: deduped.Duplicates,
		Malformed:  append(append([]*model.MalformedRecordError{}, parsed.Malformed...), deduped.Malformed...),
	}
}
