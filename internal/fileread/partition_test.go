package fileread_test

import (
	"github.com/violenttestpen/syscost/internal/fileread"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Partition", func() {
	DescribeTable("covers [0, size) exactly with contiguous spans",
		func(size int64, n int) {
			spans := fileread.Partition(size, n)
			Expect(spans).To(HaveLen(n))

			var off int64
			for _, s := range spans {
				Expect(s.Off).To(Equal(off), "spans must be contiguous")
				Expect(s.Len).To(BeNumerically(">=", 0))
				off = s.End()
			}
			Expect(off).To(Equal(size))

			chunk := size / int64(n)
			for _, s := range spans[:n-1] {
				Expect(s.Len).To(Equal(chunk))
			}
			Expect(spans[n-1].Len).To(Equal(size - int64(n-1)*chunk))
		},
		Entry("single worker", int64(1000), 1),
		Entry("even split", int64(1024), 8),
		Entry("remainder", int64(1001), 8),
		Entry("prime size", int64(10007), 12),
		Entry("more workers than bytes", int64(3), 16),
		Entry("empty file", int64(0), 4),
		Entry("one byte", int64(1), 2),
		Entry("large", int64(10*1024*1024+17), 64),
	)

	It("should treat a non-positive worker count as one", func() {
		Expect(fileread.Partition(10, 0)).To(Equal([]fileread.Span{{Off: 0, Len: 10}}))
		Expect(fileread.Partition(10, -3)).To(Equal([]fileread.Span{{Off: 0, Len: 10}}))
	})
})
