package pkg

const (
	TRAFFIC_LIGHT_ADDITIONAL_WEIGHT_SECOND = 7.0

	// leaps post-processing
	LEAPS_MAX_STEP   = 5
	LEAPS_WEIGHT_EPS = 1.0 // second
)

type NumMwmId uint16

const (
	FAKE_NUM_MWM_ID NumMwmId = 0xFFFF
)
