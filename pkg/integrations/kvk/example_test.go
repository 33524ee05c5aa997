package kvk_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/cloudmazing/kvkapi/pkg/httputil"
	"github.com/cloudmazing/kvkapi/pkg/integrations/kvk"
)

func newExampleServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/zoeken", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"resultaten":[{"kvkNummer":"12345678","type":"hoofdvestiging",
			"links":[{"rel":"basisprofiel","href":"http://%s/api/detail/12345678"}]}]}`, r.Host)
	})
	mux.HandleFunc("/api/detail/12345678", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kvkNummer":"12345678","naam":"Test BV","websites":["www.test.nl"]}`)
	})
	mux.HandleFunc("/api/v1/basisprofielen/12345678/hoofdvestiging", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kvkNummer":"12345678","eersteHandelsnaam":"Test Handelsnaam",
			"adressen":[{"type":"bezoekadres","straatnaam":"Teststraat","huisnummer":1,"plaats":"Amsterdam"}]}`)
	})
	return httptest.NewServer(mux)
}

func ExampleClient_Search() {
	server := newExampleServer()
	defer server.Close()

	client, err := kvk.New("demo-key",
		kvk.WithBaseURL(server.URL+"/api/"),
		kvk.WithThrottle(httputil.NewThrottle(0)),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	companies, err := client.Search(context.Background(), "Test BV", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range companies {
		fmt.Println(c.KvkNumber, c.TradeName, c.Websites)
	}
	// Output:
	// 12345678 Test BV [www.test.nl]
}

func ExampleClient_GetBaseProfile() {
	server := newExampleServer()
	defer server.Close()

	client, err := kvk.NewClient(
		kvk.WithBaseURL(server.URL+"/api"),
		kvk.WithThrottle(httputil.NewThrottle(0)),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	company, err := client.GetBaseProfile(context.Background(), "12345678")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(company.TradeName)
	for _, a := range company.Addresses {
		fmt.Println(a.Type, a.Street, a.HouseNumber, a.City)
	}
	// Output:
	// Test Handelsnaam
	// bezoekadres Teststraat 1 Amsterdam
}

func ExampleCompany_Map() {
	c := kvk.NewCompany("12345678", "", "Test BV", nil, []string{"www.test.nl"})
	m := c.Map()
	fmt.Println(m["kvkNumber"], m["tradeName"], m["establishmentNumber"] == nil)
	// Output:
	// 12345678 Test BV true
}
