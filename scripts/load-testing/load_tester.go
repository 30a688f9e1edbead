package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type LoadTestConfig struct {
	BaseURL             string
	ConcurrentUsers     int
	TestDurationSeconds int
	RampUpSeconds       int
	ProductCount        int
	PromoCode           string
	PlaceOrders         bool
}

type TestResult struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	CartMutations      int64
	PromoAttempts      int64
	OrdersPlaced       int64
	OrdersFailed       int64
	ResponseTimes      []time.Duration
	Errors             map[string]int64
	mutex              sync.RWMutex
}

type PerformanceMetrics struct {
	StartTime        time.Time
	EndTime          time.Time
	TotalDuration    time.Duration
	ThroughputRPS    float64
	SuccessfulRPS    float64
	P50ResponseTime  time.Duration
	P95ResponseTime  time.Duration
	P99ResponseTime  time.Duration
	ErrorRate        float64
	CartMutations    int64
	PromoAttempts    int64
	OrderSuccessRate float64
	Errors           map[string]int64
}

type LoadTester struct {
	config *LoadTestConfig
	result *TestResult
	client *http.Client
}

type productPayload struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
}

var shippingInfo = map[string]interface{}{
	"shippingInfo": map[string]string{
		"firstName": "Load",
		"lastName":  "Test",
		"email":     "load@example.com",
		"phone":     "555-0100",
		"address":   "1 Benchmark Way",
		"city":      "Springfield",
		"state":     "SP",
		"zipCode":   "00001",
	},
}

func NewLoadTester(config *LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		result: &TestResult{
			ResponseTimes: make([]time.Duration, 0),
			Errors:        make(map[string]int64),
		},
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        1000,
				MaxIdleConnsPerHost: 100,
				MaxConnsPerHost:     200,
			},
		},
	}
}

func (lt *LoadTester) recordResponse(duration time.Duration, success bool, operation string, err error) {
	lt.result.mutex.Lock()
	defer lt.result.mutex.Unlock()

	atomic.AddInt64(&lt.result.TotalRequests, 1)
	lt.result.ResponseTimes = append(lt.result.ResponseTimes, duration)

	if success {
		atomic.AddInt64(&lt.result.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&lt.result.FailedRequests, 1)
		if err != nil {
			lt.result.Errors[fmt.Sprintf("%s: %s", operation, err.Error())]++
		}
	}
}

// call sends one request and counts any status in accepted as a success.
func (lt *LoadTester) call(ctx context.Context, operation, method, path string, body interface{}, accepted ...int) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, lt.config.BaseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := lt.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		if ctx.Err() == nil {
			lt.recordResponse(duration, false, operation, err)
		}
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	for _, code := range accepted {
		if resp.StatusCode == code {
			success = true
		}
	}

	var callErr error
	if !success {
		callErr = fmt.Errorf("status %d", resp.StatusCode)
	}
	lt.recordResponse(duration, success, operation, callErr)
	return resp.StatusCode, callErr
}

func (lt *LoadTester) product(n int) productPayload {
	id := fmt.Sprintf("load-%04d", n)
	return productPayload{
		ProductID: id,
		Name:      "Load product " + id,
		Price:     fmt.Sprintf("%d.%02d", 1+n%50, n%100),
		Image:     "/images/" + id + ".png",
	}
}

func (lt *LoadTester) simulateUser(ctx context.Context, userID int, wg *sync.WaitGroup) {
	defer wg.Done()

	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(userID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			lt.shoppingRound(ctx, rng)
			time.Sleep(time.Duration(rng.Intn(1000)) * time.Millisecond)
		}
	}
}

// shoppingRound walks one shopper through browse, cart edits and checkout.
func (lt *LoadTester) shoppingRound(ctx context.Context, rng *rand.Rand) {
	p := lt.product(rng.Intn(lt.config.ProductCount))

	if _, err := lt.call(ctx, "add_item", http.MethodPost, "/api/cart/items", p); err == nil {
		atomic.AddInt64(&lt.result.CartMutations, 1)
	}

	switch rng.Intn(3) {
	case 0:
		lt.call(ctx, "increment", http.MethodPost, "/api/cart/items/"+p.ProductID+"/increment", nil)
	case 1:
		lt.call(ctx, "update_quantity", http.MethodPut, "/api/cart/items/"+p.ProductID, map[string]int{"quantity": 1 + rng.Intn(5)})
	default:
		lt.call(ctx, "decrement", http.MethodPost, "/api/cart/items/"+p.ProductID+"/decrement", nil)
	}
	atomic.AddInt64(&lt.result.CartMutations, 1)

	lt.call(ctx, "get_cart", http.MethodGet, "/api/cart", nil)
	lt.call(ctx, "checkout_summary", http.MethodGet, "/api/checkout", nil)

	if lt.config.PromoCode != "" && rng.Intn(4) == 0 {
		atomic.AddInt64(&lt.result.PromoAttempts, 1)
		lt.call(ctx, "apply_promo", http.MethodPost, "/api/checkout/promo",
			map[string]string{"code": lt.config.PromoCode}, http.StatusConflict)
	}

	if lt.config.PlaceOrders && rng.Intn(10) == 0 {
		if _, err := lt.call(ctx, "place_order", http.MethodPost, "/api/checkout/orders", shippingInfo); err == nil {
			atomic.AddInt64(&lt.result.OrdersPlaced, 1)
		} else if ctx.Err() == nil {
			atomic.AddInt64(&lt.result.OrdersFailed, 1)
		}
		return
	}

	if rng.Intn(5) == 0 {
		lt.call(ctx, "remove_item", http.MethodDelete, "/api/cart/items/"+p.ProductID, nil)
		atomic.AddInt64(&lt.result.CartMutations, 1)
	}
}

func (lt *LoadTester) Run(ctx context.Context) *PerformanceMetrics {
	fmt.Printf("Starting load test with %d concurrent users for %d seconds\n",
		lt.config.ConcurrentUsers, lt.config.TestDurationSeconds)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(lt.config.TestDurationSeconds)*time.Second)
	defer cancel()

	startTime := time.Now()
	var wg sync.WaitGroup

	userInterval := time.Duration(lt.config.RampUpSeconds) * time.Second / time.Duration(lt.config.ConcurrentUsers)

	for i := 0; i < lt.config.ConcurrentUsers; i++ {
		wg.Add(1)
		go lt.simulateUser(ctx, i, &wg)

		if i < lt.config.ConcurrentUsers-1 {
			select {
			case <-ctx.Done():
			case <-time.After(userInterval):
			}
		}
	}

	go lt.monitorProgress(ctx, startTime)

	wg.Wait()
	endTime := time.Now()

	return lt.calculateMetrics(startTime, endTime)
}

func (lt *LoadTester) monitorProgress(ctx context.Context, startTime time.Time) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := time.Since(startTime)
			totalReqs := atomic.LoadInt64(&lt.result.TotalRequests)
			successReqs := atomic.LoadInt64(&lt.result.SuccessfulRequests)

			fmt.Printf("[%s] Total: %d, Success: %d, RPS: %.1f, Success RPS: %.1f\n",
				elapsed.Round(time.Second), totalReqs, successReqs,
				float64(totalReqs)/elapsed.Seconds(), float64(successReqs)/elapsed.Seconds())
		}
	}
}

func (lt *LoadTester) calculateMetrics(startTime, endTime time.Time) *PerformanceMetrics {
	lt.result.mutex.RLock()
	defer lt.result.mutex.RUnlock()

	totalDuration := endTime.Sub(startTime)
	totalRequests := atomic.LoadInt64(&lt.result.TotalRequests)
	successfulRequests := atomic.LoadInt64(&lt.result.SuccessfulRequests)

	metrics := &PerformanceMetrics{
		StartTime:     startTime,
		EndTime:       endTime,
		TotalDuration: totalDuration,
		CartMutations: atomic.LoadInt64(&lt.result.CartMutations),
		PromoAttempts: atomic.LoadInt64(&lt.result.PromoAttempts),
		Errors:        make(map[string]int64, len(lt.result.Errors)),
	}

	for k, v := range lt.result.Errors {
		metrics.Errors[k] = v
	}

	if totalDuration.Seconds() > 0 {
		metrics.ThroughputRPS = float64(totalRequests) / totalDuration.Seconds()
		metrics.SuccessfulRPS = float64(successfulRequests) / totalDuration.Seconds()
	}

	if totalRequests > 0 {
		metrics.ErrorRate = float64(atomic.LoadInt64(&lt.result.FailedRequests)) / float64(totalRequests) * 100
	}

	placed := atomic.LoadInt64(&lt.result.OrdersPlaced)
	if attempts := placed + atomic.LoadInt64(&lt.result.OrdersFailed); attempts > 0 {
		metrics.OrderSuccessRate = float64(placed) / float64(attempts) * 100
	}

	if len(lt.result.ResponseTimes) > 0 {
		metrics.P50ResponseTime = calculatePercentile(lt.result.ResponseTimes, 50)
		metrics.P95ResponseTime = calculatePercentile(lt.result.ResponseTimes, 95)
		metrics.P99ResponseTime = calculatePercentile(lt.result.ResponseTimes, 99)
	}

	return metrics
}

func calculatePercentile(durations []time.Duration, percentile int) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	index := int(float64(len(sorted)) * float64(percentile) / 100.0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}

func (pm *PerformanceMetrics) PrintReport() {
	fmt.Printf("STOREFRONT LOAD TEST RESULTS\n")
	fmt.Printf("Test Duration: %v\n", pm.TotalDuration.Round(time.Second))
	fmt.Printf("Start Time: %s\n", pm.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("End Time: %s\n", pm.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("\n")

	fmt.Printf("THROUGHPUT METRICS:\n")
	fmt.Printf("- Total RPS: %.2f requests/second\n", pm.ThroughputRPS)
	fmt.Printf("- Successful RPS: %.2f requests/second\n", pm.SuccessfulRPS)
	fmt.Printf("- Error Rate: %.2f%%\n", pm.ErrorRate)
	fmt.Printf("\n")

	fmt.Printf("RESPONSE TIME METRICS:\n")
	fmt.Printf("- P50 Response Time: %v\n", pm.P50ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P95 Response Time: %v\n", pm.P95ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P99 Response Time: %v\n", pm.P99ResponseTime.Round(time.Millisecond))
	fmt.Printf("\n")

	fmt.Printf("SHOPPING METRICS:\n")
	fmt.Printf("- Cart Mutations: %d\n", pm.CartMutations)
	fmt.Printf("- Promo Attempts: %d\n", pm.PromoAttempts)
	fmt.Printf("- Order Success Rate: %.2f%%\n", pm.OrderSuccessRate)
	fmt.Printf("\n")

	if len(pm.Errors) > 0 {
		fmt.Printf("ERRORS:\n")
		for msg, count := range pm.Errors {
			fmt.Printf("- %s: %d\n", msg, count)
		}
	}
}

func (pm *PerformanceMetrics) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(pm, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
