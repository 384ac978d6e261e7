package clean

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/pairscan/internal/model"
)

func str(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func num(n int64) json.RawMessage {
	return json.RawMessage(strconv.FormatInt(n, 10))
}

func f(v float64) json.RawMessage {
	return str(strconv.FormatFloat(v, 'f', -1, 64))
}

func rawCandle(openMs int64, closePrice, volume float64) model.RawCandle {
	return model.RawCandle{
		num(openMs),
		f(closePrice), f(closePrice + 1), f(closePrice - 1), f(closePrice),
		f(volume),
		num(openMs + 3_599_999),
		f(volume * closePrice),
		num(42),
		f(volume / 2),
		f(volume * closePrice / 2),
		str("0"),
	}
}

func TestParseCandles(t *testing.T) {
	res := ParseCandles([]model.RawCandle{rawCandle(1_700_000_000_000, 100.5, 12.25)})

	require.Len(t, res.Rows, 1)
	c := res.Rows[0]
	assert.Equal(t, time.UnixMilli(1_700_000_000_000).UTC(), c.OpenTime)
	assert.Equal(t, 100.5, c.Close)
	assert.Equal(t, 101.5, c.High)
	assert.Equal(t, 12.25, c.Volume)
	assert.Equal(t, int64(42), c.TradeCount)
	assert.Equal(t, 1, res.Report.Total)
	assert.Equal(t, 1, res.Report.Kept)
	assert.Zero(t, res.Report.Removed())
}

func TestParseCandlesNullsAndMalformed(t *testing.T) {
	withNull := rawCandle(1000, 100, 10)
	withNull[model.KlineVolume] = json.RawMessage("null")

	badClose := rawCandle(2000, 100, 10)
	badClose[model.KlineClose] = str("abc")

	negativeCount := rawCandle(3000, 100, 10)
	negativeCount[model.KlineTradeCount] = num(-1)

	fractionalTime := rawCandle(4000, 100, 10)
	fractionalTime[model.KlineOpenTime] = json.RawMessage("4000.5")

	short := rawCandle(5000, 100, 10)[:5]

	nullIgnore := rawCandle(6000, 100, 10)
	nullIgnore[model.KlineIgnore] = json.RawMessage("null")

	res := ParseCandles([]model.RawCandle{withNull, badClose, negativeCount, fractionalTime, short, nullIgnore})

	require.Len(t, res.Rows, 1)
	assert.Equal(t, time.UnixMilli(6000).UTC(), res.Rows[0].OpenTime)
	assert.Equal(t, 1, res.Report.Nulls)
	require.Len(t, res.Report.Malformed, 4)

	assert.Equal(t, 1, res.Report.Malformed[0].Row)
	assert.Equal(t, "close", res.Report.Malformed[0].Field)
	assert.Equal(t, `"abc"`, res.Report.Malformed[0].Value)
	assert.ErrorIs(t, res.Report.Malformed[0], errNotNumeric)

	assert.Equal(t, "trade_count", res.Report.Malformed[1].Field)
	assert.ErrorIs(t, res.Report.Malformed[1], errNegative)

	assert.Equal(t, "open_time", res.Report.Malformed[2].Field)
	assert.ErrorIs(t, res.Report.Malformed[2], errNotInteger)

	assert.Equal(t, 4, res.Report.Malformed[3].Row)
	assert.Equal(t, "row", res.Report.Malformed[3].Field)
	assert.Contains(t, res.Report.Malformed[3].Error(), "malformed candle row 4")
}

func TestMalformedValueIsCutOnRuneBoundary(t *testing.T) {
	row := rawCandle(1000, 100, 10)
	row[model.KlineClose] = str(strings.Repeat("é", 20))

	res := ParseCandles([]model.RawCandle{row})
	require.Len(t, res.Report.Malformed, 1)

	value := res.Report.Malformed[0].Value
	assert.True(t, utf8.ValidString(value))
	assert.True(t, strings.HasSuffix(value, "..."))
	assert.Equal(t, `"`+strings.Repeat("é", 15)+"...", value)
}

func TestParseCandlesAcceptsJSONNumbers(t *testing.T) {
	row := rawCandle(1000, 100, 10)
	row[model.KlineClose] = json.RawMessage("101.25")

	res := ParseCandles([]model.RawCandle{row})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 101.25, res.Rows[0].Close)
}

func TestCandlesRemovesDuplicatesPreservingOrder(t *testing.T) {
	parsed := ParseCandles([]model.RawCandle{
		rawCandle(1000, 100, 10),
		rawCandle(2000, 101, 11),
		rawCandle(1000, 100, 10),
		rawCandle(3000, 102, 12),
		rawCandle(2000, 101, 11),
	})
	require.Len(t, parsed.Rows, 5)

	res := Candles(parsed.Rows)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, 2, res.Report.Duplicates)
	assert.Empty(t, res.Report.Malformed)
	for i, want := range []int64{1000, 2000, 3000} {
		assert.Equal(t, want, res.Rows[i].OpenTime.UnixMilli())
	}
}

func TestRawCandlesReportsOrderViolationsAgainstInputRow(t *testing.T) {
	bad := rawCandle(9000, 100, 10)
	bad[model.KlineHigh] = str("")

	res := RawCandles([]model.RawCandle{
		rawCandle(1000, 100, 10),
		rawCandle(3000, 101, 10),
		bad,
		rawCandle(2000, 102, 10),
	})

	require.Len(t, res.Rows, 2)
	require.Len(t, res.Report.Malformed, 2)
	assert.Equal(t, 2, res.Report.Malformed[0].Row)
	assert.Equal(t, 3, res.Report.Malformed[1].Row)
	assert.Equal(t, "open_time not increasing", res.Report.Malformed[1].Reason)
	assert.Equal(t, 4, res.Report.Total)
	assert.Equal(t, 2, res.Report.Kept)
}

func TestCandlesIsIdempotent(t *testing.T) {
	first := RawCandles([]model.RawCandle{
		rawCandle(1000, 100, 10),
		rawCandle(1000, 100, 10),
		rawCandle(2000, 101, 11),
		rawCandle(1500, 99, 9),
		rawCandle(3000, 105, 20),
	})

	second := Candles(first.Rows)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Zero(t, second.Report.Removed())

	// the input slice is not modified
	assert.Len(t, first.Rows, 3)
}

func TestEmptyInput(t *testing.T) {
	candles := RawCandles(nil)
	assert.Empty(t, candles.Rows)
	assert.Zero(t, candles.Report.Total)

	trades := RawTrades([]model.RawTrade{})
	assert.Empty(t, trades.Rows)

	book, report := ParseDepth(model.RawDepth{})
	assert.Empty(t, book.Bids)
	assert.Empty(t, book.Asks)
	assert.Zero(t, report.Total)
}

func rawTrade(id int64, ms int64, price, qty string) model.RawTrade {
	return model.RawTrade{
		"id":           num(id),
		"price":        str(price),
		"qty":          str(qty),
		"time":         num(ms),
		"isBuyerMaker": json.RawMessage("true"),
		"isBestMatch":  json.RawMessage("true"),
	}
}

func TestRawTrades(t *testing.T) {
	missingQty := rawTrade(4, 1000, "10", "1")
	delete(missingQty, "qty")

	nullTime := rawTrade(5, 1000, "10", "1")
	nullTime["time"] = json.RawMessage("null")

	badFlag := rawTrade(6, 1000, "10", "1")
	badFlag["isBuyerMaker"] = str("yes")

	res := RawTrades([]model.RawTrade{
		rawTrade(1, 1000, "10.5", "2"),
		rawTrade(2, 1000, "10.6", "1"),
		rawTrade(1, 1000, "10.5", "2"),
		missingQty,
		nullTime,
		badFlag,
	})

	require.Len(t, res.Rows, 2)
	assert.Equal(t, int64(1), res.Rows[0].ID)
	assert.Equal(t, int64(2), res.Rows[1].ID)
	assert.Equal(t, res.Rows[0].Time, res.Rows[1].Time)
	assert.InDelta(t, 21.0, res.Rows[0].QuoteQuantity, 1e-9)
	assert.True(t, res.Rows[0].IsBuyerMaker)

	assert.Equal(t, 6, res.Report.Total)
	assert.Equal(t, 1, res.Report.Duplicates)
	assert.Equal(t, 2, res.Report.Nulls)
	require.Len(t, res.Report.Malformed, 1)
	assert.Equal(t, "isBuyerMaker", res.Report.Malformed[0].Field)
	assert.Equal(t, 5, res.Report.Malformed[0].Row)
}

func TestParseTradesQuantityAlias(t *testing.T) {
	res := ParseTrades([]model.RawTrade{{
		"price":    str("3"),
		"quantity": str("4"),
		"time":     num(1000),
		"quoteQty": str("12"),
	}})

	require.Len(t, res.Rows, 1)
	assert.Equal(t, 4.0, res.Rows[0].Quantity)
	assert.Equal(t, 12.0, res.Rows[0].QuoteQuantity)
}

func level(price, qty string) []json.RawMessage {
	return []json.RawMessage{str(price), str(qty)}
}

func TestParseDepth(t *testing.T) {
	raw := model.RawDepth{
		LastUpdateID: 7,
		Bids: [][]json.RawMessage{
			level("100", "5"),
			level("99", "3"),
			{str("98"), json.RawMessage("null")},
		},
		Asks: [][]json.RawMessage{
			level("101", "2"),
			level("102", "-8"),
			{str("103")},
			level("104", "8"),
		},
	}

	book, report := ParseDepth(raw)

	assert.Equal(t, int64(7), book.LastUpdateID)
	assert.Equal(t, []model.DepthLevel{{Price: 100, Quantity: 5}, {Price: 99, Quantity: 3}}, book.Bids)
	assert.Equal(t, []model.DepthLevel{{Price: 101, Quantity: 2}, {Price: 104, Quantity: 8}}, book.Asks)
	assert.Equal(t, 7, report.Total)
	assert.Equal(t, 4, report.Kept)
	assert.Equal(t, 1, report.Nulls)
	require.Len(t, report.Malformed, 2)
	assert.Equal(t, "ask", report.Malformed[0].Kind)
	assert.Equal(t, "quantity", report.Malformed[0].Field)
	assert.Equal(t, "level", report.Malformed[1].Field)
}
