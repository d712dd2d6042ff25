package notification

const (
	KindSwapDecided         = "SWAP_DECIDED"
	KindShiftSwapAdjustment = "SHIFT_SWAP_ADJUSTMENT"
)

type SendOptions struct {
	Deeplink string
	// RelatedType and RelatedID point the inbox entry back at its subject.
	RelatedType string
	RelatedID   string
}
