package dropcache_test

import (
	"os"
	"path/filepath"

	"github.com/violenttestpen/syscost/internal/dropcache"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DropCache", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "data")
		Expect(os.WriteFile(path, make([]byte, 8192), 0o644)).To(Succeed())
	})

	DescribeTable("New",
		func(mode, name string) {
			d, err := dropcache.New(mode)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.String()).To(Equal(name))
		},
		Entry("default", "", "none"),
		Entry("none", "none", "none"),
		Entry("proc", "proc", "proc"),
		Entry("fadvise", "fadvise", "fadvise"),
	)

	It("should reject unknown modes", func() {
		_, err := dropcache.New("bogus")
		Expect(err).To(HaveOccurred())
	})

	It("should drop a file's pages without privileges", func() {
		Expect(dropcache.Fadvise{}.Drop(path)).To(Succeed())
	})

	It("should fail to drop a missing file", func() {
		Expect(dropcache.Fadvise{}.Drop(path + ".missing")).NotTo(Succeed())
	})

	It("should surface a proc write failure from Drop", func() {
		p := &dropcache.Proc{Path: filepath.Join(GinkgoT().TempDir(), "no", "such", "drop_caches")}
		Expect(p.Drop(path)).NotTo(Succeed())
	})

	It("should swallow failures in After", func() {
		p := &dropcache.Proc{Path: filepath.Join(GinkgoT().TempDir(), "no", "such", "drop_caches")}
		Expect(func() { dropcache.After(p, path) }).NotTo(Panic())
		Expect(func() { dropcache.After(nil, path) }).NotTo(Panic())
		Expect(func() { dropcache.After(dropcache.Nop{}, path) }).NotTo(Panic())
	})

	It("should write to a drop_caches stand-in", func() {
		target := filepath.Join(GinkgoT().TempDir(), "drop_caches")
		Expect(os.WriteFile(target, nil, 0o644)).To(Succeed())
		p := &dropcache.Proc{Path: target}
		Expect(p.Drop(path)).To(Succeed())
		b, err := os.ReadFile(target)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("3"))
	})
})
