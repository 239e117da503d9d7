package money_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fintrackhq/fintrack/internal/core/money"
)

func TestMoney(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Money Suite")
}

var _ = Describe("Money", func() {
	Describe("Parse", func() {
		It("should parse plain integers", func() {
			m, err := money.Parse("45")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Cents()).To(Equal(int64(4500)))
		})

		It("should parse two fractional digits", func() {
			m, err := money.Parse("45.90")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Cents()).To(Equal(int64(4590)))
		})

		It("should accept a comma as decimal separator", func() {
			m, err := money.Parse("45,90")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Cents()).To(Equal(int64(4590)))
		})

		It("should accept a single fractional digit", func() {
			m, err := money.Parse("3.5")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Cents()).To(Equal(int64(350)))
		})

		It("should accept a missing integer part", func() {
			m, err := money.Parse(".75")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Cents()).To(Equal(int64(75)))
		})

		It("should round half up on the third fractional digit", func() {
			m, err := money.Parse("1.005")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Cents()).To(Equal(int64(101)))

			m, err = money.Parse("1.004")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Cents()).To(Equal(int64(100)))
		})

		It("should reject negative amounts", func() {
			_, err := money.Parse("-10.00")
			Expect(err).To(MatchError(money.ErrInvalidAmount))
		})

		It("should reject a leading plus sign", func() {
			_, err := money.Parse("+10.00")
			Expect(err).To(MatchError(money.ErrInvalidAmount))
		})

		It("should reject empty and non-numeric input", func() {
			for _, input := range []string{"", "   ", "abc", "1.2.3", "10.x"} {
				_, err := money.Parse(input)
				Expect(err).To(MatchError(money.ErrInvalidAmount), "input %q", input)
			}
		})
	})

	Describe("String", func() {
		It("should always render two fractional digits", func() {
			Expect(money.FromCents(92000).String()).To(Equal("920.00"))
			Expect(money.FromCents(5).String()).To(Equal("0.05"))
			Expect(money.FromCents(0).String()).To(Equal("0.00"))
		})

		It("should render negative amounts with a leading sign", func() {
			Expect(money.FromCents(-50).String()).To(Equal("-0.50"))
			Expect(money.FromCents(-12345).String()).To(Equal("-123.45"))
		})
	})

	Describe("arithmetic", func() {
		It("should add and subtract exactly", func() {
			a := money.FromCents(5000)
			b := money.FromCents(3000)
			Expect(a.Add(b).Cents()).To(Equal(int64(8000)))
			Expect(b.Sub(a).Cents()).To(Equal(int64(-2000)))
			Expect(b.Sub(a).IsNegative()).To(BeTrue())
		})

		It("should sum many small amounts without drift", func() {
			var total money.Money
			cent := money.FromCents(1)
			for i := 0; i < 1000; i++ {
				total = total.Add(cent)
			}
			Expect(total.String()).To(Equal("10.00"))
		})
	})

	Describe("PercentOf", func() {
		It("should compute the ratio as a percentage", func() {
			spent := money.FromCents(8000)
			limit := money.FromCents(10000)
			Expect(spent.PercentOf(limit)).To(BeNumerically("~", 80.0, 0.001))
		})

		It("should return zero for a non-positive whole", func() {
			Expect(money.FromCents(8000).PercentOf(0)).To(BeZero())
			Expect(money.FromCents(8000).PercentOf(money.FromCents(-100))).To(BeZero())
		})
	})

	Describe("JSON", func() {
		It("should marshal as a plain number with two fractional digits", func() {
			out, err := json.Marshal(money.FromCents(92000))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal("920.00"))
		})

		It("should unmarshal numbers and quoted strings", func() {
			var m money.Money
			Expect(json.Unmarshal([]byte(`45.90`), &m)).To(Succeed())
			Expect(m.Cents()).To(Equal(int64(4590)))

			Expect(json.Unmarshal([]byte(`"12.50"`), &m)).To(Succeed())
			Expect(m.Cents()).To(Equal(int64(1250)))
		})

		It("should unmarshal null as zero", func() {
			m := money.FromCents(100)
			Expect(json.Unmarshal([]byte(`null`), &m)).To(Succeed())
			Expect(m.IsZero()).To(BeTrue())
		})
	})
})
