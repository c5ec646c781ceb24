package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("JOBLESS_TEST_MODE") == "" {
			_ = os.Setenv("JOBLESS_TEST_MODE", "1")
		}
	})
}
