package util

import (
	"fmt"
	"time"
)

// StorageName builds the on-disk name for an uploaded file. Different users
// can upload files sharing the same original name, so the stored name gets a
// timestamp and a random suffix prepended to stay collision free.
func StorageName(originalName string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), RandStr(9), originalName)
}
