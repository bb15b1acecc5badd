package core

// CommodityLookup classifies the current value of a key that is expected to hold a commodity.
type CommodityLookup struct {
	Commodity Commodity
	Absent    bool
	OtherKind bool
}

// LookupCommodity inspects a payload read from the ledger.
// A document without docType counts as a commodity.
// A malformed payload fails with ErrMalformedRecord.
func LookupCommodity(payload []byte) (CommodityLookup, error) {
	lookup, err := ClassifyCommodity(payload)
	if err != nil || lookup.Absent || lookup.OtherKind {
		return lookup, err
	}

	commodity, err := DecodeCommodity(payload)
	if err != nil {
		return CommodityLookup{}, err
	}

	return CommodityLookup{Commodity: commodity}, nil
}

// ClassifyCommodity is LookupCommodity without decoding the commodity fields.
// Only the discriminant has to parse, so Commodity is left zero.
func ClassifyCommodity(payload []byte) (CommodityLookup, error) {
	if len(payload) == 0 {
		return CommodityLookup{Absent: true}, nil
	}

	docType, err := DocTypeOf(payload)
	if err != nil {
		return CommodityLookup{}, err
	}

	if docType != DocTypeCommodity && docType != "" {
		return CommodityLookup{OtherKind: true}, nil
	}

	return CommodityLookup{}, nil
}
