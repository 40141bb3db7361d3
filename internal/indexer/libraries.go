package indexer

import "github.com/robertluiz/mcp-code-validator-sub000/internal/graph"

func fn(name string) graph.LibraryItem {
	return graph.LibraryItem{Name: name, Kind: graph.KindLibraryFunction}
}

func cls(name string) graph.LibraryItem {
	return graph.LibraryItem{Name: name, Kind: graph.KindLibraryClass}
}

func cnst(name string) graph.LibraryItem {
	return graph.LibraryItem{Name: name, Kind: graph.KindLibraryConstant}
}

func hook(name string) graph.LibraryItem {
	return graph.LibraryItem{Name: name, Kind: graph.KindLibraryHook}
}

func typ(name string) graph.LibraryItem {
	return graph.LibraryItem{Name: name, Kind: graph.KindLibraryType}
}

// knownLibraries maps package names to the API items they provide.
// Dependencies outside the table are still indexed as bare Library
// nodes; the table only enriches the PROVIDES edges.
var knownLibraries = map[string][]graph.LibraryItem{
	"react": {
		hook("useState"), hook("useEffect"), hook("useContext"),
		hook("useReducer"), hook("useCallback"), hook("useMemo"),
		hook("useRef"), hook("useLayoutEffect"), hook("useTransition"),
		fn("createElement"), fn("createContext"), fn("memo"),
		fn("forwardRef"), fn("lazy"),
		cls("Component"), cls("PureComponent"),
		cnst("Fragment"), cnst("StrictMode"),
		typ("ReactNode"), typ("FC"), typ("PropsWithChildren"),
	},
	"react-dom": {
		fn("createPortal"), fn("flushSync"), fn("render"),
	},
	"next": {
		fn("notFound"), fn("redirect"), fn("revalidatePath"),
		cls("NextResponse"), cls("NextRequest"),
		typ("Metadata"), typ("NextPage"), typ("GetServerSideProps"),
		typ("GetStaticProps"),
	},
	"express": {
		fn("Router"), fn("json"), fn("urlencoded"), fn("static"),
		typ("Request"), typ("Response"), typ("NextFunction"),
	},
	"axios": {
		fn("get"), fn("post"), fn("put"), fn("delete"), fn("create"),
		typ("AxiosResponse"), typ("AxiosError"),
	},
	"lodash": {
		fn("debounce"), fn("throttle"), fn("cloneDeep"), fn("merge"),
		fn("pick"), fn("omit"), fn("isEqual"), fn("groupBy"),
	},
	"zod": {
		fn("object"), fn("string"), fn("number"), fn("array"),
		typ("ZodSchema"), typ("infer"),
	},
}
