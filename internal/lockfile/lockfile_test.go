package lockfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/remote"
)

func glfwResolution() *remote.Resolution {
	return &remote.Resolution{
		Ref:     models.Ref{Name: "glfw", Version: "3.2.1", Channel: "bincrafters/stable"},
		Version: "3.2.1",
		Remote:  "bincrafters",
		SHA256:  "deadbeef",
		Size:    1024,
	}
}

func TestReadMissingIsEmpty(t *testing.T) {
	lock, err := Read(filepath.Join(t.TempDir(), "forge.lock"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if lock.Version != models.LockfileVersion {
		t.Errorf("Wrong version: %d", lock.Version)
	}
	if len(lock.Requires) != 0 {
		t.Errorf("Empty lock has entries: %v", lock.Requires)
	}
}

func TestRecordWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.lock")

	lock := models.NewLockfile()
	Record(lock, glfwResolution())

	if err := Write(path, lock); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	entry, ok := loaded.Requires["glfw"]
	if !ok {
		t.Fatalf("glfw entry missing: %v", loaded.Requires)
	}
	if entry.Ref != "glfw/3.2.1@bincrafters/stable" {
		t.Errorf("Wrong pinned ref: %s", entry.Ref)
	}
	if entry.SHA256 != "deadbeef" || entry.Size != 1024 {
		t.Errorf("Artifact pin lost: %+v", entry)
	}
}

func TestCheckAcceptsMatchingPin(t *testing.T) {
	lock := models.NewLockfile()
	Record(lock, glfwResolution())

	if err := Check(lock, glfwResolution()); err != nil {
		t.Errorf("Matching resolution rejected: %v", err)
	}
}

func TestCheckRejectsVersionDrift(t *testing.T) {
	lock := models.NewLockfile()
	Record(lock, glfwResolution())

	drifted := glfwResolution()
	drifted.Version = "3.3.0"
	if err := Check(lock, drifted); err == nil {
		t.Errorf("Version drift not rejected")
	}
}

func TestCheckRejectsChecksumDrift(t *testing.T) {
	lock := models.NewLockfile()
	Record(lock, glfwResolution())

	drifted := glfwResolution()
	drifted.SHA256 = "facefeed"
	if err := Check(lock, drifted); err == nil {
		t.Errorf("Checksum drift not rejected")
	}
}

func TestPinnedHoldsBackFloatingLatest(t *testing.T) {
	lock := models.NewLockfile()
	Record(lock, glfwResolution())

	req := models.Ref{Name: "glfw", Version: "latest", Channel: "bincrafters/stable"}
	pinned := Pinned(lock, req)
	if pinned.Version != "3.2.1" {
		t.Errorf("Floating require not pinned: %+v", pinned)
	}
	if pinned.Name != "glfw" || pinned.Channel != "bincrafters/stable" {
		t.Errorf("Pin mangled the require: %+v", pinned)
	}
}

func TestPinnedLeavesExactVersionsAlone(t *testing.T) {
	lock := models.NewLockfile()
	Record(lock, glfwResolution())

	req := models.Ref{Name: "glfw", Version: "3.3.0", Channel: "bincrafters/stable"}
	if pinned := Pinned(lock, req); pinned.Version != "3.3.0" {
		t.Errorf("Exact require rewritten: %+v", pinned)
	}
}

func TestPinnedIgnoresUnlockedRequires(t *testing.T) {
	lock := models.NewLockfile()

	req := models.Ref{Name: "glm", Version: "latest", Channel: "bincrafters/stable"}
	if pinned := Pinned(lock, req); pinned.Version != "latest" {
		t.Errorf("Unlocked require rewritten: %+v", pinned)
	}
}

func TestCheckIgnoresUnlockedRequires(t *testing.T) {
	lock := models.NewLockfile()
	if err := Check(lock, glfwResolution()); err != nil {
		t.Errorf("Unlocked require rejected: %v", err)
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.lock")
	if err := os.WriteFile(path, []byte("version: 99\nrequires: {}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Errorf("Unknown lockfile version accepted")
	}
}
