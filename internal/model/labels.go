package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// KeyLabels maps known message keys to display labels.
var KeyLabels = map[string]string{
	"amount":          "Amount",
	"target":          "Destination",
	"instrumentName":  "Asset",
	"operationType":   "Type",
	"userID":          "User ID",
	"creationTime":    "Creation Time",
	"account":         "Account",
	"expiresOn":       "Expiration Time",
	"buyAmount":       "Buy Amount",
	"buyAssetId":      "Buy Asset",
	"maxBorrow":       "Max Borrow",
	"maxRepay":        "Max Repay",
	"nonce":           "Nonce",
	"sellAmount":      "Sell Amount",
	"sellAssetId":     "Sell Asset",
	"chain":           "Chain",
	"delegateAddress": "Delegate Address",
}

// Label returns the display label of key, or key itself when unknown.
func Label(key string) string {
	if label, ok := KeyLabels[key]; ok {
		return label
	}
	return key
}

// PresentValue splits a field value into its primary text and an optional secondary suffix.
func PresentValue(key string, value interface{}) (primary, secondary string) {
	switch v := value.(type) {
	case nil:
		return "", ""
	case string:
		return v, ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), ""
	case uint64:
		return strconv.FormatUint(v, 10), ""
	case int, int64, uint8, uint16, uint32, bool:
		return fmt.Sprint(v), ""
	}

	if c, ok := value.(Chain); ok && key == "chain" {
		return strconv.FormatUint(uint64(c.ChainID), 10), " - " + c.ChainName
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value), ""
	}
	return string(data), ""
}
