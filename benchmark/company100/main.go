package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/consumable-wear-service/pkg/grpc/wearpb"
)

var maxCompanies int = 100
var equipmentPerCompany int = 10
var httpHostPort string = "127.0.0.1:8080"
var grpcHostPort string = "127.0.0.1:50051"

var grpcClient wearpb.WearServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	companies := make([]string, maxCompanies)
	for i := range maxCompanies {
		companies[i] = uuid.NewString()
	}
	fmt.Printf("generated %v companies\n", maxCompanies)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = wearpb.NewWearServiceClient(conn)

	fmt.Printf("gRPC client created\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxCompanies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registerEquipment(companies[i])
			fmt.Printf("\rregistered equipment for company %v", i)
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v equipment: used time=%v seconds, throughput=%v action/second\n",
		maxCompanies*equipmentPerCompany, usedTime.Seconds(), float64(maxCompanies*equipmentPerCompany)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxCompanies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doAction(companies[i])
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v companies: used time=%v seconds, throughput=%v action/second\n",
		maxCompanies, usedTime.Seconds(), float64(maxCompanies*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndCode() string {
	rndMu.Lock()
	defer rndMu.Unlock()
	return fmt.Sprintf("EQ-%d", rnd.Intn(equipmentPerCompany))
}

func postJSON(path string, payload any) {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("\nresponse status code %v for %s\n", resp.StatusCode, path)
	}
}

func callGrpc(call func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error), req map[string]any) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		panic(err)
	}
	resp, err := call(context.Background(), in)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	st := resp.GetFields()["status"].GetStructValue().GetFields()
	if !st["success"].GetBoolValue() {
		fmt.Printf("\nresponse success = false: %v\n", st["message"].GetStringValue())
	}
}

func registerEquipment(company string) {
	for i := range equipmentPerCompany {
		postJSON(fmt.Sprintf("/companies/%s/equipment", company), map[string]string{
			"code":              fmt.Sprintf("EQ-%d", i),
			"description":       "benchmark equipment",
			"consumables":       "Blade,Belt,Filter",
			"life_limits":       fmt.Sprintf("%.0f,%.0f,%.0f", rndFloat64(100, 700, 0), rndFloat64(100, 700, 0), rndFloat64(100, 700, 0)),
			"part_descriptions": "blade|belt|filter",
		})
	}
}

func doAction(company string) {
	actions := []func(){
		genRecordUsageAction(company),
		genPartStatusAction(company),
		genRecordShiftAction(company),
	}
	actionNames := []string{
		"RecordUsage",
		"PartStatus",
		"RecordShift",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for company %v", actionNames[index], company)
		time.Sleep(time.Duration(100+rndFloat64(0, 1000, 0)) * time.Millisecond)
	}
}

func genRecordUsageAction(company string) func() {
	return func() {
		code := rndCode()
		hours := rndFloat64(0.0, 24.0, 2)

		if flipCoin() {
			postJSON(fmt.Sprintf("/companies/%s/equipment/%s/usage", company, code), map[string]string{
				"hours_of_use": fmt.Sprintf("%.2f", hours),
			})
		} else {
			callGrpc(grpcClient.RecordUsage, map[string]any{
				"company":      company,
				"code":         code,
				"hours_of_use": hours,
			})
		}
	}
}

func genRecordShiftAction(company string) func() {
	return func() {
		if flipCoin() {
			postJSON(fmt.Sprintf("/companies/%s/shifts", company), map[string]string{
				"start": "07:00",
				"end":   "16:00",
			})
		} else {
			callGrpc(grpcClient.RecordShift, map[string]any{
				"company": company,
				"start":   "22:00",
				"end":     "06:00",
			})
		}
	}
}

func genPartStatusAction(company string) func() {
	return func() {
		code := rndCode()

		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/companies/%s/equipment/%s/parts", httpHostPort, company, code))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
			}
		} else {
			callGrpc(grpcClient.GetPartStatus, map[string]any{
				"company": company,
				"code":    code,
			})
		}
	}
}
