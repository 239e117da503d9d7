package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fintrackhq/fintrack/internal/transport/swagger"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document every API route group", func() {
		for _, path := range []string{
			"/auth/register",
			"/auth/login",
			"/auth/refresh",
			"/users/me",
			"/transactions",
			"/transactions/{id}",
			"/categories",
			"/categories/{id}",
			"/budgets",
			"/budgets/{id}",
			"/dashboard",
			"/dashboard/report",
			"/dashboard/trend",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should require authentication on dashboard routes", func() {
		item := doc.Paths.Find("/dashboard")
		Expect(item).NotTo(BeNil())
		Expect(item.Get.Security).NotTo(BeNil())
	})
})

var _ = Describe("Swagger UI handler", func() {
	It("should serve the UI page", func() {
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		rec := httptest.NewRecorder()

		swagger.Handler().ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})
})
