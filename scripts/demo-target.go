//go:build ignore

// Local HTTP target for trying out pulse probe: endpoints with different
// latency profiles plus a flaky one that fails a fraction of requests.
//
//	go run scripts/demo-target.go
//	pulse probe --url http://localhost:8090/slow --count 10
package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

func main() {
	http.HandleFunc("/fast", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(2+rand.Intn(6)) * time.Millisecond)
		fmt.Fprintln(w, "fast response")
	})

	http.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(200+rand.Intn(150)) * time.Millisecond)
		fmt.Fprintln(w, "slow response")
	})

	http.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		if rand.Intn(5) == 0 {
			http.Error(w, "transient failure", http.StatusInternalServerError)
			return
		}
		time.Sleep(time.Duration(20+rand.Intn(40)) * time.Millisecond)
		fmt.Fprintln(w, "flaky response")
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Println("Demo target listening on :8090")
	log.Fatal(http.ListenAndServe(":8090", nil))
}
