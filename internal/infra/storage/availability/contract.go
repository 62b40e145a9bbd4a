package availability

import (
	"github.com/m04kA/SMC-TherapyBooking/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
