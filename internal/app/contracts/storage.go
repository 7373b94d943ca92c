package contracts

import "context"

type ReportStorage interface {
	StoreJSONObject(ctx context.Context, objectName string, data []byte) error
}
