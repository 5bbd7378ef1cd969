package get_statistics

import (
	"context"

	getStatistics "github.com/tkardach/SwimClubServer/internal/usecase/get_statistics"
)

type GetStatisticsUseCase interface {
	Execute(ctx context.Context, req *getStatistics.Request) (*getStatistics.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
