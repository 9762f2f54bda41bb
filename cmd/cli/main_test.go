package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const ratingPage = `<html><body><table class="rating_fac"><tbody>
<tr><td>1</td><td>a</td><td>300</td><td></td><td></td><td>БВИ</td><td>да</td></tr>
<tr><td>2</td><td>b</td><td>290</td><td></td><td></td><td></td><td>нет</td></tr>
<tr><td>3</td><td>c</td><td>280</td><td></td><td></td><td>ЦП</td><td>да, другое направление</td></tr>
</tbody></table></body></html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rating.html")
	if err := os.WriteFile(path, []byte(ratingPage), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAnalyzeFromFile(t *testing.T) {
	var out bytes.Buffer
	o := options{university: 2, faculty: 1, action: actionAnalyze, position: 3, limit: -1, format: "table", htmlFile: writePage(t)}
	if err := run(o, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Бюджетных мест: 81", "Над вами:", "\tС согласием: 1", "Всего абитуриентов: 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunInteractiveList(t *testing.T) {
	var out bytes.Buffer
	o := options{limit: -1, format: "table", htmlFile: writePage(t)}
	// university 2, faculty 1, action 1 (list), first 2 applicants
	if err := run(o, strings.NewReader("2\n1\n1\n2\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Куда поступать:") || !strings.Contains(got, "290") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if strings.Contains(got, "280") {
		t.Fatalf("limit not applied:\n%s", got)
	}
}

func TestRunExportCSV(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.csv")
	o := options{university: 2, faculty: 1, action: actionList, limit: -1, format: "csv", output: outPath, htmlFile: writePage(t)}
	if err := run(o, strings.NewReader(""), &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "position,exam_result,basis,agreement\n1,300,БВИ,да\n2,290,,нет\n3,280,ЦП,Да\n"
	if string(data) != want {
		t.Fatalf("got %q, want %q", data, want)
	}
}

func TestRunAnalyzeNeedsPosition(t *testing.T) {
	o := options{university: 2, faculty: 1, action: actionAnalyze, limit: -1, htmlFile: writePage(t)}
	if err := run(o, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatal("expected error without position")
	}
}
