// Package clean turns raw exchange records into typed, deduplicated rows.
//
// Rows with a null required field are dropped and counted. Rows whose fields
// are present but unparseable are dropped and reported individually as
// *model.MalformedRecordError. Nothing is coerced to zero.
package clean

import (
	"encoding/json"
	"fmt"

	"github.com/Alias1177/pairscan/internal/model"
)

// Result is a cleaned sequence plus what the pass removed
type Result[T any] struct {
	Rows   []T
	Report model.CleanReport

	// source[i] is the input position of Rows[i]
	source []int
}

func malformed(kind string, row int, field string, raw json.RawMessage, err error) *model.MalformedRecordError {
	return &model.MalformedRecordError{
		Kind:   kind,
		Row:    row,
		Field:  field,
		Value:  preview(raw),
		Reason: err.Error(),
		Err:    err,
	}
}

// ParseCandles decodes positional kline rows
func ParseCandles(raw []model.RawCandle) Result[model.Candle] {
	res := Result[model.Candle]{
		Rows:   make([]model.Candle, 0, len(raw)),
		Report: model.CleanReport{Total: len(raw)},
	}

	for i, row := range raw {
		if len(row) < model.KlineIgnore {
			res.Report.Malformed = append(res.Report.Malformed, &model.MalformedRecordError{
				Kind:   "candle",
				Row:    i,
				Field:  "row",
				Reason: fmt.Sprintf("expected at least %d fields, got %d", model.KlineIgnore, len(row)),
			})
			continue
		}
		if hasNullField(row[:model.KlineIgnore]) {
			res.Report.Nulls++
			continue
		}

		c, err := parseCandle(i, row)
		if err != nil {
			res.Report.Malformed = append(res.Report.Malformed, err)
			continue
		}
		res.Rows = append(res.Rows, c)
		res.source = append(res.source, i)
	}

	res.Report.Kept = len(res.Rows)
	return res
}

func hasNullField(fields []json.RawMessage) bool {
	for _, f := range fields {
		if isNull(f) {
			return true
		}
	}
	return false
}

func parseCandle(i int, row model.RawCandle) (model.Candle, *model.MalformedRecordError) {
	var (
		c   model.Candle
		err error
	)

	if c.OpenTime, err = parseMillis(row[model.KlineOpenTime]); err != nil {
		return c, malformed("candle", i, model.KlineFieldNames[model.KlineOpenTime], row[model.KlineOpenTime], err)
	}
	if c.CloseTime, err = parseMillis(row[model.KlineCloseTime]); err != nil {
		return c, malformed("candle", i, model.KlineFieldNames[model.KlineCloseTime], row[model.KlineCloseTime], err)
	}
	if c.TradeCount, err = parseInt(row[model.KlineTradeCount]); err != nil {
		return c, malformed("candle", i, model.KlineFieldNames[model.KlineTradeCount], row[model.KlineTradeCount], err)
	}
	if c.TradeCount < 0 {
		return c, malformed("candle", i, model.KlineFieldNames[model.KlineTradeCount], row[model.KlineTradeCount], errNegative)
	}

	floats := []struct {
		pos int
		dst *float64
	}{
		{model.KlineOpen, &c.Open},
		{model.KlineHigh, &c.High},
		{model.KlineLow, &c.Low},
		{model.KlineClose, &c.Close},
		{model.KlineVolume, &c.Volume},
		{model.KlineQuoteVolume, &c.QuoteVolume},
		{model.KlineTakerBuyBase, &c.TakerBuyBaseVolume},
		{model.KlineTakerBuyQuote, &c.TakerBuyQuoteVolume},
	}
	for _, f := range floats {
		if *f.dst, err = parseFloat(row[f.pos]); err != nil {
			return c, malformed("candle", i, model.KlineFieldNames[f.pos], row[f.pos], err)
		}
	}

	return c, nil
}

// ParseTrades decodes trade objects. price, qty (or quantity) and time are
// required; the rest is optional.
func ParseTrades(raw []model.RawTrade) Result[model.Trade] {
	res := Result[model.Trade]{
		Rows:   make([]model.Trade, 0, len(raw)),
		Report: model.CleanReport{Total: len(raw)},
	}

	for i, obj := range raw {
		qtyKey := "qty"
		if _, ok := obj[qtyKey]; !ok {
			qtyKey = "quantity"
		}
		if isNull(obj["price"]) || isNull(obj[qtyKey]) || isNull(obj["time"]) {
			res.Report.Nulls++
			continue
		}

		t, err := parseTrade(i, obj, qtyKey)
		if err != nil {
			res.Report.Malformed = append(res.Report.Malformed, err)
			continue
		}
		res.Rows = append(res.Rows, t)
	}

	res.Report.Kept = len(res.Rows)
	return res
}

func parseTrade(i int, obj model.RawTrade, qtyKey string) (model.Trade, *model.MalformedRecordError) {
	var (
		t   model.Trade
		err error
	)

	if t.Price, err = parseFloat(obj["price"]); err != nil {
		return t, malformed("trade", i, "price", obj["price"], err)
	}
	if t.Quantity, err = parseFloat(obj[qtyKey]); err != nil {
		return t, malformed("trade", i, qtyKey, obj[qtyKey], err)
	}
	if t.Quantity < 0 {
		return t, malformed("trade", i, qtyKey, obj[qtyKey], errNegative)
	}
	if t.Time, err = parseMillis(obj["time"]); err != nil {
		return t, malformed("trade", i, "time", obj["time"], err)
	}

	if raw, ok := obj["id"]; ok && !isNull(raw) {
		if t.ID, err = parseInt(raw); err != nil {
			return t, malformed("trade", i, "id", raw, err)
		}
	}
	if raw, ok := obj["quoteQty"]; ok && !isNull(raw) {
		if t.QuoteQuantity, err = parseFloat(raw); err != nil {
			return t, malformed("trade", i, "quoteQty", raw, err)
		}
	} else {
		t.QuoteQuantity = t.Price * t.Quantity
	}
	if raw, ok := obj["isBuyerMaker"]; ok && !isNull(raw) {
		if t.IsBuyerMaker, err = parseBool(raw); err != nil {
			return t, malformed("trade", i, "isBuyerMaker", raw, err)
		}
	}
	if raw, ok := obj["isBestMatch"]; ok && !isNull(raw) {
		if t.IsBestMatch, err = parseBool(raw); err != nil {
			return t, malformed("trade", i, "isBestMatch", raw, err)
		}
	}

	return t, nil
}

// ParseDepth decodes both sides of a book snapshot. Level order is kept as
// delivered; levels are not deduplicated.
func ParseDepth(raw model.RawDepth) (model.DepthSnapshot, model.CleanReport) {
	bids, bidReport := parseLevels("bid", raw.Bids)
	asks, askReport := parseLevels("ask", raw.Asks)

	return model.DepthSnapshot{
		LastUpdateID: raw.LastUpdateID,
		Bids:         bids,
		Asks:         asks,
	}, bidReport.Merge(askReport)
}

func parseLevels(kind string, raw [][]json.RawMessage) ([]model.DepthLevel, model.CleanReport) {
	report := model.CleanReport{Total: len(raw)}
	levels := make([]model.DepthLevel, 0, len(raw))

	for i, pair := range raw {
		if len(pair) < 2 {
			report.Malformed = append(report.Malformed, &model.MalformedRecordError{
				Kind:   kind,
				Row:    i,
				Field:  "level",
				Reason: fmt.Sprintf("expected [price, quantity], got %d fields", len(pair)),
			})
			continue
		}
		if isNull(pair[0]) || isNull(pair[1]) {
			report.Nulls++
			continue
		}

		price, err := parseFloat(pair[0])
		if err != nil {
			report.Malformed = append(report.Malformed, malformed(kind, i, "price", pair[0], err))
			continue
		}
		qty, err := parseFloat(pair[1])
		if err != nil {
			report.Malformed = append(report.Malformed, malformed(kind, i, "quantity", pair[1], err))
			continue
		}
		if qty < 0 {
			report.Malformed = append(report.Malformed, malformed(kind, i, "quantity", pair[1], errNegative))
			continue
		}

		levels = append(levels, model.DepthLevel{Price: price, Quantity: qty})
	}

	report.Kept = len(levels)
	return levels, report
}
