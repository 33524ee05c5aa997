package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudmazing/kvkapi/pkg/httputil"
)

func ExampleThrottle() {
	th := httputil.NewThrottle(20 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_ = th.Wait(context.Background())
	}
	fmt.Println("spaced:", time.Since(start) >= 40*time.Millisecond)
	// Output:
	// spaced: true
}
