package darkbot_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
	"github.com/ginjaninja78/netbox2darkbot/internal/darkbot"
	"github.com/ginjaninja78/netbox2darkbot/internal/types"
)

var header = types.Record{Address: "address", DNSName: "dns_name", Description: "description", Status: "status", RowNumber: 1}

func record(address, dnsName, description, status string) types.Record {
	return types.Record{Address: address, DNSName: dnsName, Description: description, Status: status}
}

type failingWriter struct {
	allowed int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.allowed == 0 {
		return 0, errors.New("disk full")
	}
	w.allowed--
	return len(p), nil
}

var _ = Describe("Formatter", func() {
	var (
		formatter *darkbot.Formatter
		out       *bytes.Buffer
	)

	BeforeEach(func() {
		formatter = darkbot.DefaultFormatter()
		out = &bytes.Buffer{}
	})

	Describe("IPLine", func() {
		It("lists the CIDR address and the DNS name", func() {
			Expect(formatter.IPLine(record("10.0.0.1/24", "host.example", "", "active"))).
				To(Equal("10.0.0.1 10.0.0.1/24 / host.example"))
		})

		It("annotates non-active records with their status", func() {
			Expect(formatter.IPLine(record("10.0.0.2", "", "desc", "deprecated"))).
				To(Equal("10.0.0.2 desc [deprecated]"))
		})

		It("keeps fragment order address, DNS name, description", func() {
			Expect(formatter.IPLine(record("2001:db8::1/64", "v6.example", "router", "reserved"))).
				To(Equal("2001:db8::1 2001:db8::1/64 / v6.example / router [reserved]"))
		})

		It("marks bare active addresses as undocumented", func() {
			Expect(formatter.IPLine(record("10.0.0.3", "", "", "active"))).
				To(Equal("10.0.0.3 Undocumented IP on NetBox"))
		})

		It("marks bare non-active addresses as undocumented with their status", func() {
			Expect(formatter.IPLine(record("10.0.0.4", "", "", "dhcp"))).
				To(Equal("10.0.0.4 Undocumented IP on NetBox [dhcp]"))
		})

		It("treats the status as case-sensitive", func() {
			Expect(formatter.IPLine(record("10.0.0.5", "a.example", "", "Active"))).
				To(Equal("10.0.0.5 a.example [Active]"))
		})

		It("annotates an empty status", func() {
			Expect(formatter.IPLine(record("10.0.0.6", "a.example", "", ""))).
				To(Equal("10.0.0.6 a.example []"))
		})
	})

	Describe("WriteIPs", func() {
		It("writes one line per record after the header", func() {
			records := []types.Record{
				header,
				record("10.0.0.1/24", "host.example", "", "active"),
				record("10.0.0.2", "", "desc", "deprecated"),
			}

			written, err := formatter.WriteIPs(out, records, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(Equal(2))
			Expect(out.String()).To(Equal(
				"10.0.0.1 10.0.0.1/24 / host.example\n" +
					"10.0.0.2 desc [deprecated]\n"))
		})

		It("keeps the first record when not skipping", func() {
			written, err := formatter.WriteIPs(out, []types.Record{record("10.0.0.1", "", "", "active")}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(Equal(1))
			Expect(out.String()).To(Equal("10.0.0.1 Undocumented IP on NetBox\n"))
		})

		It("writes nothing for a header-only source", func() {
			written, err := formatter.WriteIPs(out, []types.Record{header}, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(BeZero())
			Expect(out.Len()).To(BeZero())
		})

		It("stops at the first write error", func() {
			records := []types.Record{
				header,
				record("10.0.0.1", "", "", "active"),
				record("10.0.0.2", "", "", "active"),
			}

			written, err := formatter.WriteIPs(&failingWriter{allowed: 1}, records, true)
			Expect(err).To(MatchError(ContainSubstring("disk full")))
			Expect(written).To(Equal(1))
		})
	})

	Describe("WriteReverse", func() {
		It("groups addresses sharing a DNS name with per-entry status", func() {
			records := []types.Record{
				header,
				record("10.0.0.1", "host.example", "", "active"),
				record("10.0.0.2", "host.example", "", "maintenance"),
			}

			written, err := formatter.WriteReverse(out, records, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(Equal(1))
			Expect(out.String()).To(Equal("host.example 10.0.0.1 / 10.0.0.2 [maintenance]\n"))
		})

		It("keeps names in first-seen order and strips prefixes", func() {
			records := []types.Record{
				header,
				record("10.0.0.1/24", "b.example", "", "active"),
				record("10.0.0.2", "a.example", "ignored", "active"),
				record("10.0.0.3/32", "b.example", "", "reserved"),
			}

			_, err := formatter.WriteReverse(out, records, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(Equal(
				"b.example 10.0.0.1 / 10.0.0.3 [reserved]\n" +
					"a.example 10.0.0.2\n"))
		})

		It("ignores records without a DNS name", func() {
			records := []types.Record{
				header,
				record("10.0.0.1", "", "desc", "active"),
				record("10.0.0.2", "", "", "deprecated"),
			}

			written, err := formatter.WriteReverse(out, records, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(BeZero())
			Expect(out.Len()).To(BeZero())
		})

		It("never emits the header row as a name", func() {
			_, err := formatter.WriteReverse(out, []types.Record{header, record("10.0.0.1", "x.example", "", "active")}, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).NotTo(ContainSubstring("dns_name"))
		})
	})

	Describe("GroupReverse", func() {
		It("exposes the grouping", func() {
			groups := formatter.GroupReverse([]types.Record{
				record("10.0.0.1", "a.example", "", "active"),
				record("10.0.0.2", "b.example", "", "active"),
				record("10.0.0.3", "a.example", "", "offline"),
			}, false)

			Expect(groups.Len()).To(Equal(2))
			Expect(groups.Names()).To(Equal([]string{"a.example", "b.example"}))
			Expect(groups.Entries("a.example")).To(Equal([]string{"10.0.0.1", "10.0.0.3 [offline]"}))
		})
	})

	Describe("Write", func() {
		records := []types.Record{
			header,
			record("10.0.0.1", "host.example", "", "active"),
			record("10.0.0.2", "host.example", "", "active"),
		}

		It("produces byte-identical output across runs", func() {
			for _, ct := range types.SupportedContentTypes {
				first, second := &bytes.Buffer{}, &bytes.Buffer{}
				_, err := formatter.Write(first, ct, records, true)
				Expect(err).NotTo(HaveOccurred())
				_, err = formatter.Write(second, ct, records, true)
				Expect(err).NotTo(HaveOccurred())
				Expect(second.Bytes()).To(Equal(first.Bytes()))
			}
		})

		It("rejects unknown content types", func() {
			_, err := formatter.Write(out, types.ContentType("IPS"), records, true)
			Expect(err).To(HaveOccurred())
			Expect(out.Len()).To(BeZero())
		})
	})

	Context("with custom settings", func() {
		BeforeEach(func() {
			formatter = darkbot.NewFormatter(config.DarkbotSettings{
				ActiveStatus:     "up",
				UndocumentedText: "unknown",
				Separator:        ", ",
			})
		})

		It("uses the configured wording", func() {
			Expect(formatter.IPLine(record("10.0.0.1/8", "a.example", "", "up"))).
				To(Equal("10.0.0.1 10.0.0.1/8, a.example"))
			Expect(formatter.IPLine(record("10.0.0.2", "", "", "active"))).
				To(Equal("10.0.0.2 unknown [active]"))
			Expect(formatter.ReverseLine("a.example", []string{"1", "2"})).
				To(Equal("a.example 1, 2"))
		})
	})

	It("emits lines whose first token is the lookup key", func() {
		line := formatter.IPLine(record("192.0.2.1/24", "gw.example", "gateway", "active"))
		Expect(strings.Fields(line)[0]).To(Equal("192.0.2.1"))
	})
})
