package types

import "fmt"

// WasteKind is the binary waste classification stored as a smallint.
type WasteKind int16

const (
	WasteKindDry WasteKind = 0
	WasteKindWet WasteKind = 1
)

func (k WasteKind) String() string {
	switch k {
	case WasteKindDry:
		return "dry"
	case WasteKindWet:
		return "wet"
	}

	return fmt.Sprintf("unknown(%d)", int16(k))
}

func (k WasteKind) Valid() bool {
	return k == WasteKindDry || k == WasteKindWet
}

func ParseWasteKind(s string) (WasteKind, error) {
	switch s {
	case "dry", "kering":
		return WasteKindDry, nil
	case "wet", "basah":
		return WasteKindWet, nil
	}

	return 0, fmt.Errorf("invalid waste kind %q", s)
}

// WasteKindFromLegacyCode maps the legacy category code to a waste kind.
// The legacy table used "kering" (dry) and "basah" (wet).
func WasteKindFromLegacyCode(code string) (WasteKind, error) {
	switch code {
	case "kering":
		return WasteKindDry, nil
	case "basah":
		return WasteKindWet, nil
	}

	return 0, fmt.Errorf("unrecognized legacy category code %q", code)
}
