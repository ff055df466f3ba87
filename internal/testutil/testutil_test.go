package testutil

import (
	"errors"
	"os"
	"os/exec"
	"testing"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
}

func TestAssertNoError_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_ASSERT_NO_ERROR_FAIL") == "1" {
		AssertNoError(t, errors.New("boom"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAssertNoError_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_ASSERT_NO_ERROR_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail when error is non-nil")
	}
}

func TestAssertError(t *testing.T) {
	t.Parallel()

	AssertError(t, errors.New("test error"))
}

func TestAssertError_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_ASSERT_ERROR_FAIL") == "1" {
		AssertError(t, nil)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAssertError_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_ASSERT_ERROR_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail when error is nil")
	}
}

func TestAssertDeepEqual(t *testing.T) {
	t.Parallel()

	AssertDeepEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
}

func TestAssertDeepEqual_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_ASSERT_DEEP_EQUAL_FAIL") == "1" {
		AssertDeepEqual(t, []int{1, 2, 3}, []int{1, 2, 4})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAssertDeepEqual_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_ASSERT_DEEP_EQUAL_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail on mismatched values")
	}
}
