package csvparser_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
	"github.com/ginjaninja78/netbox2darkbot/internal/csvparser"
)

var _ = Describe("Parser", func() {
	var settings config.CSVSettings

	BeforeEach(func() {
		settings = config.Default().CSVSettings
	})

	Describe("ParseReader", func() {
		It("returns every row, header included", func() {
			data, err := csvparser.ParseReader(strings.NewReader(
				"address,dns_name,description,status\n"+
					"10.0.0.1/24,host.example,,active\n"), settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.RowCount()).To(Equal(2))
			Expect(data.Rows[1]).To(Equal([]string{"10.0.0.1/24", "host.example", "", "active"}))
		})

		It("handles quoted fields with delimiters, quotes and newlines", func() {
			data, err := csvparser.ParseReader(strings.NewReader(
				"address,dns_name,description,status\n"+
					"10.0.0.1,,\"rack 4, \"\"top\"\"\nshelf\",active\n"+
					"10.0.0.2,,,active\n"), settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Rows[1][2]).To(Equal("rack 4, \"top\"\nshelf"))
			Expect(data.LineNumbers).To(Equal([]int{1, 2, 4}))
		})

		It("preserves surrounding whitespace", func() {
			data, err := csvparser.ParseReader(strings.NewReader("h\n 10.0.0.1 , a ,b ,active\n"), settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Rows[1]).To(Equal([]string{" 10.0.0.1 ", " a ", "b ", "active"}))
		})

		It("accepts rows of different widths", func() {
			data, err := csvparser.ParseReader(strings.NewReader("a,b,c,d\n1,2\n"), settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Rows[1]).To(HaveLen(2))
		})

		It("drops blank lines and keeps source line numbers", func() {
			data, err := csvparser.ParseReader(strings.NewReader(
				"address,dns_name,description,status\n"+
					"\n"+
					"10.0.0.1,h.example,,active,EXTRA\n"), settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.RowCount()).To(Equal(2))
			Expect(data.Rows[1]).To(HaveLen(5))
			Expect(data.LineNumbers).To(Equal([]int{1, 3}))
		})

		It("uses the configured delimiter", func() {
			settings.Delimiter = "semicolon"
			data, err := csvparser.ParseReader(strings.NewReader("a;b;c;d\n10.0.0.1;x;y;active\n"), settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Rows[1]).To(Equal([]string{"10.0.0.1", "x", "y", "active"}))
		})

		It("returns an empty result for an empty input", func() {
			data, err := csvparser.ParseReader(strings.NewReader(""), settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.RowCount()).To(BeZero())
		})
	})

	Describe("Parse", func() {
		It("reads a file from disk", func() {
			dir, err := os.MkdirTemp("", "csvparser")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)

			path := filepath.Join(dir, "ips.csv")
			Expect(os.WriteFile(path, []byte("a,b,c,d\n10.0.0.1,,,active\n"), 0644)).To(Succeed())

			data, err := csvparser.Parse(path, settings)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.SourceFile).To(Equal(path))
			Expect(data.RowCount()).To(Equal(2))
		})

		It("fails for a missing file", func() {
			_, err := csvparser.Parse("/nonexistent/ips.csv", settings)
			Expect(err).To(MatchError(ContainSubstring("failed to open file")))
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})

	DescribeTable("Delimiter",
		func(name string, want rune) {
			Expect(csvparser.Delimiter(name)).To(Equal(want))
		},
		Entry("default", "", ','),
		Entry("comma", ",", ','),
		Entry("tab name", "tab", '\t'),
		Entry("escaped tab", "\\t", '\t'),
		Entry("pipe", "pipe", '|'),
		Entry("semicolon", ";", ';'),
	)
})
