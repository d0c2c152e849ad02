package source_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
	"github.com/ginjaninja78/netbox2darkbot/internal/source"
)

var _ = Describe("Source", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "source")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	DescribeTable("DetectFormat",
		func(path string, want source.Format) {
			Expect(source.DetectFormat(path)).To(Equal(want))
		},
		Entry("csv", "export.csv", source.FormatCSV),
		Entry("xlsx", "export.xlsx", source.FormatXLSX),
		Entry("upper case xlsx", "EXPORT.XLSX", source.FormatXLSX),
		Entry("no extension", "export", source.FormatCSV),
	)

	It("reads CSV and XLSX exports into the same rows", func() {
		rows := [][]string{
			{"address", "dns_name", "description", "status"},
			{"10.0.0.1/24", "host.example", "", "active"},
			{"10.0.0.2", "", "desc", "deprecated"},
		}

		csvPath := filepath.Join(dir, "export.csv")
		Expect(os.WriteFile(csvPath, []byte(
			"address,dns_name,description,status\n"+
				"10.0.0.1/24,host.example,,active\n"+
				"10.0.0.2,,desc,deprecated\n"), 0644)).To(Succeed())

		xlsxPath := filepath.Join(dir, "export.xlsx")
		f := excelize.NewFile()
		for i, row := range rows {
			cells := make([]interface{}, len(row))
			for j, v := range row {
				cells[j] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.SetSheetRow("Sheet1", cell, &cells)).To(Succeed())
		}
		Expect(f.SaveAs(xlsxPath)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		cfg := config.Default()

		fromCSV, err := source.Read(csvPath, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(fromCSV.Format).To(Equal(source.FormatCSV))

		fromXLSX, err := source.Read(xlsxPath, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(fromXLSX.Format).To(Equal(source.FormatXLSX))

		Expect(fromCSV.Rows).To(Equal(rows))
		Expect(fromXLSX.Rows).To(Equal(rows))
	})

	It("names the file in read errors", func() {
		missing := filepath.Join(dir, "missing.csv")
		_, err := source.Read(missing, config.Default())
		Expect(err).To(MatchError(ContainSubstring(missing)))
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})
