package spawn

import (
	"os/exec"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/violenttestpen/syscost/internal/bench"
	"github.com/violenttestpen/syscost/internal/mono"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeForker struct {
	forkErr error
	reapErr error
	delay   time.Duration
	forks   int
	reaped  []int
}

func (f *fakeForker) Fork() (int, error) {
	f.forks++
	time.Sleep(f.delay)
	if f.forkErr != nil {
		return 0, f.forkErr
	}
	return 1000 + f.forks, nil
}

func (f *fakeForker) Reap(pid int) error {
	f.reaped = append(f.reaped, pid)
	return f.reapErr
}

func (*fakeForker) String() string { return "fake" }

var _ = Describe("Count", func() {
	const window = 40 * time.Millisecond

	It("should reap every child it counts", func() {
		f := &fakeForker{delay: time.Millisecond}
		n, err := Count(f, window)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeNumerically(">", 0))
		Expect(f.reaped).To(HaveLen(int(n)))
		Expect(f.reaped[0]).To(Equal(1001))
	})

	It("should give up at the deadline when fork keeps failing", func() {
		f := &fakeForker{forkErr: errors.New("resource temporarily unavailable")}
		start := mono.Start()
		n, err := Count(f, window)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(f.reaped).To(BeEmpty())
		Expect(mono.Since(start)).To(BeNumerically("<", window+100*time.Millisecond))
	})

	It("should overrun the window by at most about one cycle", func() {
		const cycle = 10 * time.Millisecond
		f := &fakeForker{delay: cycle}
		start := mono.Start()
		_, err := Count(f, window)
		Expect(err).NotTo(HaveOccurred())
		Expect(mono.Since(start)).To(BeNumerically("<", window+cycle+50*time.Millisecond))
	})

	It("should treat a failed reap as fatal", func() {
		f := &fakeForker{reapErr: errors.New("no child processes")}
		_, err := Count(f, window)
		Expect(bench.IsFatal(err)).To(BeTrue())
	})

	It("should produce one result per trial", func() {
		set, err := bench.Repeat(3, Trial(&fakeForker{}, 5*time.Millisecond), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(set).To(HaveLen(3))
		for _, r := range set {
			Expect(r.OK()).To(BeTrue())
		}
	})
})

var _ = Describe("Forkers", func() {
	It("should fork, exit and reap real children", func() {
		if runtime.GOOS != "linux" {
			Skip("raw fork is linux-only")
		}
		f, err := New(ModeRaw, "")
		Expect(err).NotTo(HaveOccurred())
		n, err := Count(f, 50*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeNumerically(">", 0))
	})

	It("should fork and exec the default command", func() {
		if _, err := exec.LookPath(DefaultCommand); err != nil {
			Skip(DefaultCommand + " is not available")
		}
		f, err := New(ModeExec, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(f.String()).To(Equal("exec:" + DefaultCommand))
		n, err := Count(f, 50*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeNumerically(">", 0))
	})

	It("should reject unknown modes and commands", func() {
		_, err := New("vfork", "")
		Expect(err).To(HaveOccurred())
		_, err = New(ModeExec, "/no/such/binary --flag")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("ValidTrials",
		func(n int, valid bool) {
			Expect(ValidTrials(n)).To(Equal(valid))
		},
		Entry("zero", 0, false),
		Entry("negative", -1, false),
		Entry("one", 1, true),
		Entry("twenty", 20, true),
		Entry("twenty-one", 21, false),
	)

	DescribeTable("splitCommandLine",
		func(cmd string, expected []string) {
			Expect(splitCommandLine(cmd)).To(Equal(expected))
		},
		Entry("single", "/bin/true", []string{"/bin/true"}),
		Entry("args", "/bin/sh -c exit", []string{"/bin/sh", "-c", "exit"}),
		Entry("double quotes", `/bin/sh -c "exit 0"`, []string{"/bin/sh", "-c", "exit 0"}),
		Entry("nested quotes", `echo "it's"`, []string{"echo", "it's"}),
		Entry("extra blanks", "  a \t b  ", []string{"a", "b"}),
		Entry("empty", "", []string(nil)),
	)
})
